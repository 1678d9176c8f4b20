package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jeffrydegrande/resemble/embedding"
	"github.com/jeffrydegrande/resemble/features"
	"github.com/jeffrydegrande/resemble/types"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <file_a.rs> <file_b.rs>",
	Short: "Print the structural similarity of two Rust files",
	Long: `Parse both files, count their syntactic constructs and print the cosine
similarity of the two count vectors with six decimals. This is also what
resemble does when called with two paths and no command.`,
	Args: cobra.ArbitraryArgs,
	RunE: compareMain,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func compareMain(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return usageError("")
	}
	a, b := args[0], args[1]

	// Both inputs are checked before either is parsed
	if !isFile(a) || !isFile(b) {
		return missingInputError()
	}

	countsA, err := extract(a)
	if err != nil {
		return failure(err)
	}
	countsB, err := extract(b)
	if err != nil {
		return failure(err)
	}

	similarity := embedding.SimilarityFromCounts(countsA, countsB)
	fmt.Fprintf(cmd.OutOrStdout(), "Cosine similarity = %.6f\n", similarity)
	return nil
}

// extract parses one file and logs a summary of its feature map
func extract(path string) (types.FeatureMap, error) {
	counts, err := features.ParseAndCount(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("extracted features",
		slog.String("path", path),
		slog.Int("labels", len(counts)),
		slog.Float64("total", counts.Total()),
		slog.Float64("norm", embedding.FromCounts(counts).L2Norm()),
	)
	return counts, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
