package source

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/govbrief/govbrief/internal/model"
	"github.com/govbrief/govbrief/internal/spending"
)

// AwardSearcher is the slice of the USASpending client the adapter needs.
type AwardSearcher interface {
	SearchAwards(ctx context.Context, agency, bureau string) ([]spending.Award, error)
}

// OpportunitySearcher is the slice of the SAM.gov client the adapter needs.
type OpportunitySearcher interface {
	Opportunities(ctx context.Context, department string, from, to time.Time) ([]spending.Opportunity, error)
}

// Spending contributes the agency's recent contract awards and open
// solicitations. Its topic is the agency name, optionally followed by
// " / <bureau>" (see model.ResearchQuery.SpendingTopic).
type Spending struct {
	awards        AwardSearcher
	opportunities OpportunitySearcher // nil when SAM.gov is not configured
	yearsBack     int
	logger        *log.Logger
	now           func() time.Time
}

// NewSpending creates the spending adapter. opportunities may be nil, which
// skips the solicitations section silently.
func NewSpending(awards AwardSearcher, opportunities OpportunitySearcher, yearsBack int) *Spending {
	if yearsBack < 0 {
		yearsBack = 1
	}
	return &Spending{
		awards:        awards,
		opportunities: opportunities,
		yearsBack:     yearsBack,
		logger:        log.New(os.Stderr, "spending: ", 0),
		now:           time.Now,
	}
}

func (s *Spending) Name() string           { return "spending" }
func (s *Spending) Origin() model.SourceID { return model.SourceSpending }
func (s *Spending) Label() string          { return "Agency spending data" }

// Query fetches awards and solicitations for the agency in the topic. Each
// section fails independently: a SAM.gov outage still yields the awards.
func (s *Spending) Query(ctx context.Context, topic string) string {
	agency, bureau := splitSpendingTopic(topic)
	if agency == "" {
		return ""
	}

	var sections []string

	awards, err := s.awards.SearchAwards(ctx, agency, bureau)
	if err != nil {
		s.logger.Printf("award search failed for %q: %v", topic, err)
	} else if text := spending.FormatAwards(awards); text != "" {
		sections = append(sections, "Recent contract awards:\n"+text)
	}

	if s.opportunities != nil {
		to := s.now()
		from := to.AddDate(-s.yearsBack, 0, 0)
		opps, err := s.opportunities.Opportunities(ctx, agency, from, to)
		if err != nil {
			s.logger.Printf("opportunity search failed for %q: %v", agency, err)
		} else if text := spending.FormatOpportunities(opps); text != "" {
			sections = append(sections, "Recent solicitations:\n"+text)
		}
	}

	return strings.Join(sections, "\n\n")
}

// splitSpendingTopic separates "Agency / Bureau" back into its parts.
func splitSpendingTopic(topic string) (agency, bureau string) {
	parts := strings.SplitN(topic, " / ", 2)
	agency = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		bureau = strings.TrimSpace(parts[1])
	}
	return agency, bureau
}
