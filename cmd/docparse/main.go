// Package main is the entry point for the docparse CLI. Each extraction
// mode is a subcommand: outline for structural extraction, fields for
// key-value extraction, and persona for relevance ranking over a document
// collection.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// rootCmd is the base command for the docparse CLI.
var rootCmd = &cobra.Command{
	Use:   "docparse",
	Short: "Layout-aware structural extraction from PDF documents",
	Long: `docparse reads the text layer of PDF documents and recovers their
structure: a title and heading outline, labeled key-value fields, and
persona-ranked sections across a document collection.

Each mode is a subcommand: outline, fields, and persona. All modes emit
deterministic JSON on stdout (single document) or into an output
directory (batches), with diagnostics on stderr.`,
	Version: version,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docparse.yaml or ~/.config/docparse/config.yaml)")
	rootCmd.PersistentFlags().Int("workers", 0, "worker pool size for batches (default: number of CPUs)")

	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docparse")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docparse"))
		}
	}

	viper.SetEnvPrefix("DOCPARSE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}
