package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/govbrief/govbrief/internal/worker"
)

var (
	profilesOutputDir string
	profilesWorkers   int
)

// profilesCmd represents the profiles command
var profilesCmd = &cobra.Command{
	Use:   "profiles <input-dir>",
	Short: "Extract text from saved LinkedIn HTML dumps",
	Long: `Profiles converts a directory of saved LinkedIn HTML pages into the
plain-text slices the brief command consumes via --profile.

Profile pages become Profile.txt; skills pages become skills-N.txt. Files
are processed concurrently.

Example:
  govbrief profiles linkedin_html_dumps --output-dir extracted_text`,
	Args: cobra.ExactArgs(1),
	RunE: runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)

	profilesCmd.Flags().StringVar(&profilesOutputDir, "output-dir", "extracted_text", "directory for extracted text files")
	profilesCmd.Flags().IntVar(&profilesWorkers, "workers", 4, "concurrent extraction workers")
}

func runProfiles(cmd *cobra.Command, args []string) error {
	results, err := worker.ProcessProfiles(context.Background(), args[0], profilesOutputDir, profilesWorkers)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", r.Source, r.Err)
			continue
		}
		fmt.Printf("Extracted %s -> %s\n", r.Source, r.Output)
	}

	fmt.Printf("Processed %d files, %d failed.\n", len(results), failed)
	return nil
}
