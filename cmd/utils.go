package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/jeffrydegrande/resemble/embedding"
	"github.com/mattn/go-isatty"
)

const (
	// sourceSuffix is the extension of the files picked up from directories
	sourceSuffix = ".rs"
	// fingerprintSuffix marks explicit paths loaded as fingerprints
	fingerprintSuffix = ".toml"
)

// collectSourceFiles expands paths into inputs. Files, including .toml
// fingerprints, are taken as given; directories are walked for .rs files.
// The result is sorted and has no duplicates.
func collectSourceFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			// Only process .rs files
			if !d.IsDir() && strings.HasSuffix(path, sourceSuffix) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking directory %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// loadCandidate builds a named embedding from a Rust file, or from a
// fingerprint written by `features --output` when the path ends in .toml.
func loadCandidate(path string) (embedding.Candidate, error) {
	if strings.HasSuffix(path, fingerprintSuffix) {
		fp, err := embedding.LoadFingerprintFile(path)
		if err != nil {
			return embedding.Candidate{}, err
		}
		logger.Debug("loaded fingerprint", "path", path, "source", fp.Source, "labels", len(fp.Features))
		return embedding.Candidate{Name: path, Embedding: embedding.FromCounts(fp.FeatureMap())}, nil
	}

	counts, err := extract(path)
	if err != nil {
		return embedding.Candidate{}, err
	}
	return embedding.Candidate{Name: path, Embedding: embedding.FromCounts(counts)}, nil
}

// renderTable lays out rows under headers. The columns listed in numeric are
// right-aligned.
func renderTable(w io.Writer, headers []string, rows [][]string, numeric ...int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if shouldColorize(w) {
		tw.Style().Color.Header = text.Colors{text.Bold, text.FgBlue}
	}

	tw.AppendHeader(tableRow(headers))
	for _, row := range rows {
		tw.AppendRow(tableRow(row))
	}

	columnConfigs := make([]table.ColumnConfig, 0, len(numeric))
	for _, column := range numeric {
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      column + 1,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func tableRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, cell := range cells {
		row[i] = cell
	}
	return row
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.6f", score)
}
