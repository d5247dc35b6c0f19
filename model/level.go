package model

// Level represents the structural role assigned to a block: the document
// title, one of four heading depths, or body text.
type Level int

const (
	LevelBody Level = iota
	LevelH4
	LevelH3
	LevelH2
	LevelH1
	LevelTitle
)

// String returns the schema representation of the level.
func (l Level) String() string {
	switch l {
	case LevelTitle:
		return "TITLE"
	case LevelH1:
		return "H1"
	case LevelH2:
		return "H2"
	case LevelH3:
		return "H3"
	case LevelH4:
		return "H4"
	default:
		return "BODY"
	}
}

// IsHeading returns true for H1 through H4.
func (l Level) IsHeading() bool {
	return l >= LevelH4 && l <= LevelH1
}

// Deeper returns the level one step further from the title, stopping at H4.
// BODY stays BODY: promotion past body text happens in the classifier, not here.
func (l Level) Deeper() Level {
	if l > LevelH4 {
		return l - 1
	}
	return l
}

// MarshalText implements encoding.TextMarshaler so levels serialize as
// their schema strings.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
