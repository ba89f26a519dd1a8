package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/govbrief/govbrief/internal/spending"
)

var (
	awardsBureau  string
	awardsTimeout time.Duration
)

// spendingCmd groups the raw procurement lookups, useful for checking what
// the spending source would feed the pipeline.
var spendingCmd = &cobra.Command{
	Use:   "spending",
	Short: "Query federal procurement data directly",
}

var awardsCmd = &cobra.Command{
	Use:   "awards <agency>",
	Short: "List recent contract awards for an agency",
	Long: `Awards lists recent contract awards from USASpending for the given
agency, newest first.

Example:
  govbrief spending awards "Department of Homeland Security"
  govbrief spending awards "Department of Homeland Security" \
    --bureau "U.S. Citizenship and Immigration Services"`,
	Args: cobra.ExactArgs(1),
	RunE: runAwards,
}

var bureausCmd = &cobra.Command{
	Use:   "bureaus <agency-code>",
	Short: "List an agency's sub-components",
	Long: `Bureaus lists the sub-components of a toptier agency by its
USASpending agency code (e.g. 070 for DHS).`,
	Args: cobra.ExactArgs(1),
	RunE: runBureaus,
}

func init() {
	rootCmd.AddCommand(spendingCmd)
	spendingCmd.AddCommand(awardsCmd)
	spendingCmd.AddCommand(bureausCmd)

	awardsCmd.Flags().StringVar(&awardsBureau, "bureau", "", "sub-unit within the agency")
	spendingCmd.PersistentFlags().DurationVar(&awardsTimeout, "timeout", 2*time.Minute, "request timeout")
}

func runAwards(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := spending.NewClient(cfg.Spending.BaseURL, nil, cfg.Spending.PageLimit, cfg.Spending.MaxPages, cfg.Spending.YearsBack)

	ctx, cancel := context.WithTimeout(context.Background(), awardsTimeout)
	defer cancel()

	awards, err := client.SearchAwards(ctx, args[0], awardsBureau)
	if err != nil {
		return fmt.Errorf("search awards: %w", err)
	}
	if len(awards) == 0 {
		fmt.Println("No awards found.")
		return nil
	}

	fmt.Println(spending.FormatAwards(awards))
	return nil
}

func runBureaus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := spending.NewClient(cfg.Spending.BaseURL, nil, cfg.Spending.PageLimit, cfg.Spending.MaxPages, cfg.Spending.YearsBack)

	ctx, cancel := context.WithTimeout(context.Background(), awardsTimeout)
	defer cancel()

	bureaus, err := client.SubComponents(ctx, args[0])
	if err != nil {
		return fmt.Errorf("list sub-components: %w", err)
	}
	if len(bureaus) == 0 {
		fmt.Println("No sub-components found.")
		return nil
	}

	for _, b := range bureaus {
		line := b.Name
		if b.Abbreviation != "" {
			line += " (" + b.Abbreviation + ")"
		}
		fmt.Println(line)
	}
	return nil
}
