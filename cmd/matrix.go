package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jeffrydegrande/resemble/embedding"
	"github.com/spf13/cobra"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix <path>...",
	Short: "Print the pairwise similarity of Rust files",
	Long: `Extract every Rust file found in the given paths once, then score each pair
of files. Explicit .toml paths are read as fingerprints. Pairs are scored
concurrently on the number of workers set by matrix.workers in the
configuration or --workers.`,
	Args: cobra.MinimumNArgs(1),
	RunE: matrixMain,
}

func init() {
	matrixCmd.Flags().IntP("workers", "w", 0, "Number of concurrent workers (default from config)")
	rootCmd.AddCommand(matrixCmd)
}

func matrixMain(cmd *cobra.Command, args []string) error {
	workers := cfg.Matrix.Workers
	if cmd.Flags().Changed("workers") {
		workers, _ = cmd.Flags().GetInt("workers")
	}
	if workers < 1 {
		return usageError("--workers must be at least 1")
	}

	files, err := collectSourceFiles(args)
	if err != nil {
		return failure(err)
	}
	if len(files) == 0 {
		return failure(errors.New("no Rust source files found"))
	}

	candidates := make([]embedding.Candidate, 0, len(files))
	for _, file := range files {
		candidate, err := loadCandidate(file)
		if err != nil {
			return failure(err)
		}
		candidates = append(candidates, candidate)
	}

	scores := embedding.Pairs(candidates, workers)
	logger.Info("scored pairs", "files", len(files), "workers", workers)

	headers := []string{"#", "File"}
	numeric := []int{0}
	for i := range candidates {
		headers = append(headers, strconv.Itoa(i+1))
		numeric = append(numeric, i+2)
	}

	rows := make([][]string, 0, len(candidates))
	for i, c := range candidates {
		row := []string{strconv.Itoa(i + 1), c.Name}
		for j := range candidates {
			row = append(row, formatScore(scores[i][j]))
		}
		rows = append(rows, row)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(out, headers, rows, numeric...))
	return nil
}
