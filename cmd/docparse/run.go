package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/sureshkumar2704/Adobe-India-Hackathon-2025/batch"
)

// loadJobs reads the named PDF files into batch jobs
func loadJobs(paths []string) ([]batch.Job, error) {
	jobs := make([]batch.Job, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		jobs = append(jobs, batch.Job{Name: filepath.Base(path), Data: data})
	}
	return jobs, nil
}

// runBatch processes every job through fn. A single document with no
// output directory goes to stdout; otherwise each record is written to
// <outDir>/<name>.json. Per-document failures are reported on stderr and
// never abort the rest of the batch.
func runBatch(ctx context.Context, jobs []batch.Job, outDir string, fn batch.ProcessFunc) error {
	processor := batch.NewProcessorWithConfig(batch.Config{
		Workers: viper.GetInt("workers"),
	})
	summary := processor.Process(ctx, jobs, fn)

	if outDir == "" && len(jobs) == 1 {
		r := summary.Results[0]
		if r.Err != nil {
			return r.Err
		}
		fmt.Println(string(r.Output))
		return nil
	}

	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	for _, r := range summary.Results {
		if r.Err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render("✗ ")+r.Err.Error())
			continue
		}
		name := strings.TrimSuffix(r.Name, filepath.Ext(r.Name)) + ".json"
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, append(r.Output, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintln(os.Stderr, okStyle.Render("✓ ")+r.Name+" -> "+path)
	}

	fmt.Fprintln(os.Stderr, summaryLine(summary))
	if summary.Succeeded == 0 && summary.Failed > 0 {
		return fmt.Errorf("all %d document(s) failed", summary.Failed)
	}
	return nil
}

// summaryLine renders the batch outcome for stderr
func summaryLine(s *batch.Summary) string {
	line := okStyle.Render(fmt.Sprintf("%d succeeded", s.Succeeded))
	if s.Failed > 0 {
		line += ", " + errStyle.Render(fmt.Sprintf("%d failed", s.Failed))
	}
	if s.Skipped > 0 {
		line += ", " + warnStyle.Render(fmt.Sprintf("%d skipped", s.Skipped))
	}
	return line
}

// printWarnings writes processing warnings for a document to stderr
func printWarnings(name string, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, warnStyle.Render("! ")+name+": "+w)
	}
}
