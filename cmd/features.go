package cmd

import (
	"fmt"
	"strconv"

	"github.com/jeffrydegrande/resemble/embedding"
	"github.com/jeffrydegrande/resemble/features"
	"github.com/jeffrydegrande/resemble/types"
	"github.com/spf13/cobra"
)

var featuresCmd = &cobra.Command{
	Use:   "features <file.rs>",
	Short: "Show the syntactic feature counts of a Rust file",
	Long: `Parse a Rust file and print how often each statement, expression, type and
pattern variant occurs, along with macro, attribute and block occurrences.
With --output the counts are written to a TOML fingerprint file instead.`,
	Args: cobra.ExactArgs(1),
	RunE: featuresMain,
}

func init() {
	featuresCmd.Flags().Bool("all", false, "Include labels that do not occur in the file")
	featuresCmd.Flags().StringP("output", "o", "", "Write a TOML fingerprint to this path")
	rootCmd.AddCommand(featuresCmd)
}

func featuresMain(cmd *cobra.Command, args []string) error {
	path := args[0]
	all, _ := cmd.Flags().GetBool("all")
	output, _ := cmd.Flags().GetString("output")

	if !isFile(path) {
		return failure(fmt.Errorf("file %s does not exist", path))
	}

	counts, err := extract(path)
	if err != nil {
		return failure(err)
	}

	if output != "" {
		if err := embedding.SaveFingerprintFile(types.NewFingerprint(path, counts), output); err != nil {
			return failure(err)
		}
		logger.Info("fingerprint written", "source", path, "path", output)
		fmt.Fprintf(cmd.OutOrStdout(), "Fingerprint for %s written to %s\n", path, output)
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(out,
		[]string{"Label", "Category", "Policy", "Count"},
		featureRows(counts, all),
		3,
	))
	fmt.Fprintf(out, "%d labels, %s constructs, norm %.6f\n",
		len(counts), strconv.FormatFloat(counts.Total(), 'f', -1, 64), embedding.FromCounts(counts).L2Norm())
	return nil
}

// featureRows lists counts in taxonomy order. Without all, absent labels are
// skipped.
func featureRows(counts types.FeatureMap, all bool) [][]string {
	var rows [][]string
	for _, group := range features.Taxonomy() {
		for _, label := range group.Labels {
			count, ok := counts[label]
			if !ok && !all {
				continue
			}
			rows = append(rows, []string{
				string(label),
				string(group.Category),
				group.Policy.String(),
				strconv.FormatFloat(count, 'f', -1, 64),
			})
		}
	}
	return rows
}
