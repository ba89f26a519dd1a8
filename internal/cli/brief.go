package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/govbrief/govbrief/internal/model"
	"github.com/govbrief/govbrief/internal/pipeline"
	"github.com/govbrief/govbrief/internal/report"
)

var (
	briefBureau     string
	briefProfile    string
	briefOutputDir  string
	briefNoPDF      bool
	briefNoMarkdown bool
	briefProvider   string
	briefModel      string
	briefIterations int
	briefTimeout    time.Duration
	briefNoRobots   bool
)

// briefCmd represents the brief command
var briefCmd = &cobra.Command{
	Use:   "brief <name> <organization>",
	Short: "Research an official and generate a pre-call briefing",
	Long: `Brief researches the named official at the given organization and
produces a call-ready briefing:
- web search and Perplexity research
- recent contract awards (USASpending) and solicitations (SAM.gov)
- personnel and expertise mined from the gathered text
- an LLM draft refined through a bounded review loop

The talking points are printed to stdout; Markdown and PDF artifacts are
written alongside.

Example:
  govbrief brief "Jane Smith" "Department of Homeland Security"
  govbrief brief "Jane Smith" "Department of Homeland Security" \
    --bureau "U.S. Citizenship and Immigration Services" \
    --profile extracted_text/Profile.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runBrief,
}

func init() {
	rootCmd.AddCommand(briefCmd)

	briefCmd.Flags().StringVar(&briefBureau, "bureau", "", "sub-unit within the organization")
	briefCmd.Flags().StringVar(&briefProfile, "profile", "", "path to an extracted profile text file")
	briefCmd.Flags().StringVar(&briefOutputDir, "output-dir", ".", "directory for rendered artifacts")
	briefCmd.Flags().BoolVar(&briefNoPDF, "no-pdf", false, "skip the PDF artifact")
	briefCmd.Flags().BoolVar(&briefNoMarkdown, "no-markdown", false, "skip the Markdown artifact")
	briefCmd.Flags().StringVar(&briefProvider, "provider", "", "LLM provider (openai, anthropic, ollama)")
	briefCmd.Flags().StringVar(&briefModel, "model", "", "LLM model name")
	briefCmd.Flags().IntVar(&briefIterations, "max-iterations", 0, "review loop rewrite budget (default from config)")
	briefCmd.Flags().DurationVar(&briefTimeout, "timeout", 10*time.Minute, "overall run timeout")
	briefCmd.Flags().BoolVar(&briefNoRobots, "no-robots", false, "ignore robots.txt when fetching pages")
}

func runBrief(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyBriefFlags(cfg)
	if err := resolveCredentials(cfg); err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), briefTimeout)
	defer cancel()

	query := model.ResearchQuery{
		Subject:      args[0],
		Organization: args[1],
		SubUnit:      briefBureau,
		ProfilePath:  briefProfile,
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Researching: %s\n", query.Subject)
		fmt.Fprintf(os.Stderr, "Organization: %s\n", query.Organization)
		if query.SubUnit != "" {
			fmt.Fprintf(os.Stderr, "Bureau: %s\n", query.SubUnit)
		}
		fmt.Fprintln(os.Stderr)
	}

	result, err := p.Run(ctx, query)
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	// The research is delivered on stdout before any rendering is attempted,
	// so a broken renderer can never cost the user the result.
	printPoints(result)

	emitter := report.NewEmitter(cfg.Output)
	paths, err := emitter.Emit(result)
	for _, path := range paths {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: some artifacts failed: %v\n", err)
	}

	return nil
}

// applyBriefFlags layers the brief-specific flags over the loaded config.
func applyBriefFlags(cfg *model.Config) {
	if briefProvider != "" {
		cfg.LLM.Provider = briefProvider
	}
	if briefModel != "" {
		cfg.LLM.Model = briefModel
	}
	if briefIterations > 0 {
		cfg.Review.MaxIterations = briefIterations
	}
	if briefNoRobots {
		cfg.Research.RespectRobots = false
	}
	cfg.Output.Dir = briefOutputDir
	cfg.Output.PDF = cfg.Output.PDF && !briefNoPDF
	cfg.Output.Markdown = cfg.Output.Markdown && !briefNoMarkdown
}

func printPoints(r *model.Report) {
	fmt.Printf("Pre-call briefing: %s, %s", r.Subject, r.Organization)
	if r.SubUnit != "" {
		fmt.Printf(" (%s)", r.SubUnit)
	}
	fmt.Printf("\n\n")

	if len(r.Points) == 0 {
		fmt.Println("No talking points were produced for this query.")
		return
	}
	for i, point := range r.Points {
		fmt.Printf("%d. %s\n", i+1, string(point))
	}

	if r.SpendingAnalysis != "" {
		fmt.Printf("\nAgency spending analysis:\n\n%s\n", r.SpendingAnalysis)
	}
}
