package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/jeffrydegrande/resemble/embedding"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank <query> <path>...",
	Short: "Rank Rust files by structural similarity to a query file",
	Long: `Compare a query file with every Rust file found in the given paths and list
the candidates from most to least similar. Directories are searched
recursively for .rs files. The query and explicit candidates may also be
.toml fingerprints written by "resemble features --output". Candidates that
fail to load are skipped with a warning.`,
	Args: cobra.MinimumNArgs(2),
	RunE: rankMain,
}

func init() {
	rankCmd.Flags().Float64P("threshold", "t", 0, "Minimum similarity to report (default from config)")
	rankCmd.Flags().IntP("top", "n", 0, "Report at most this many candidates, 0 for all (default from config)")
	rootCmd.AddCommand(rankCmd)
}

func rankMain(cmd *cobra.Command, args []string) error {
	queryPath := args[0]

	matcher := embedding.NewMatcher()
	matcher.SimilarityThreshold = cfg.Rank.Threshold
	matcher.Limit = cfg.Rank.Top
	if cmd.Flags().Changed("threshold") {
		matcher.SimilarityThreshold, _ = cmd.Flags().GetFloat64("threshold")
	}
	if cmd.Flags().Changed("top") {
		matcher.Limit, _ = cmd.Flags().GetInt("top")
	}
	// Written so that NaN fails too
	if !(matcher.SimilarityThreshold >= 0 && matcher.SimilarityThreshold <= 1) {
		return usageError("--threshold must be between 0 and 1")
	}
	if matcher.Limit < 0 {
		return usageError("--top must not be negative")
	}

	if !isFile(queryPath) {
		return failure(fmt.Errorf("file %s does not exist", queryPath))
	}
	query, err := loadCandidate(queryPath)
	if err != nil {
		return failure(err)
	}

	files, err := collectSourceFiles(args[1:])
	if err != nil {
		return failure(err)
	}

	var candidates []embedding.Candidate
	for _, file := range files {
		if file == filepath.Clean(queryPath) {
			continue
		}
		candidate, err := loadCandidate(file)
		if err != nil {
			logger.Warn("skipping candidate", "path", file, "error", err)
			continue
		}
		candidates = append(candidates, candidate)
	}

	matches := matcher.Rank(query, candidates)
	logger.Info("ranked candidates", "query", queryPath, "candidates", len(candidates), "matches", len(matches))

	out := cmd.OutOrStdout()
	if len(matches) == 0 {
		fmt.Fprintln(out, "No matching files found.")
		return nil
	}

	rows := make([][]string, 0, len(matches))
	for i, m := range matches {
		rows = append(rows, []string{strconv.Itoa(i + 1), m.Candidate, formatScore(m.SimilarityScore)})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"#", "Candidate", "Similarity"},
		rows,
		0, 2,
	))
	return nil
}
