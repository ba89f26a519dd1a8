// Package spending wraps the public procurement-data APIs: USASpending
// award search and sub-component listings, and SAM.gov opportunity search.
package spending

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client calls the USASpending v2 API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	pageLimit  int
	maxPages   int
	yearsBack  int
	now        func() time.Time
}

// NewClient creates a USASpending client. The supplied HTTP client carries
// the shared timeout and proxy configuration.
func NewClient(baseURL string, httpClient *http.Client, pageLimit, maxPages, yearsBack int) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if pageLimit <= 0 {
		pageLimit = 10
	}
	if maxPages <= 0 {
		maxPages = 5
	}
	if yearsBack < 0 {
		yearsBack = 1
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		pageLimit:  pageLimit,
		maxPages:   maxPages,
		yearsBack:  yearsBack,
		now:        time.Now,
	}
}

// Award is one contract award row.
type Award struct {
	ID          string
	Recipient   string
	Amount      float64
	Date        string
	StartDate   string
	EndDate     string
	Agency      string
	SubAgency   string
	Description string
	NAICS       string
	Type        string
}

// Request/response shapes for POST /api/v2/search/spending_by_award.
type awardSearchRequest struct {
	Subawards bool               `json:"subawards"`
	Limit     int                `json:"limit"`
	Page      int                `json:"page"`
	Filters   awardSearchFilters `json:"filters"`
	Fields    []string           `json:"fields"`
}

type awardSearchFilters struct {
	AwardTypeCodes []string       `json:"award_type_codes"`
	TimePeriod     []timePeriod   `json:"time_period"`
	Agencies       []agencyFilter `json:"agencies"`
	Sort           string         `json:"sort"`
	Order          string         `json:"order"`
}

type timePeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type agencyFilter struct {
	Type        string `json:"type"`
	Tier        string `json:"tier"`
	Name        string `json:"name"`
	ToptierName string `json:"toptier_name,omitempty"`
}

type awardSearchResponse struct {
	Results      []awardRow   `json:"results"`
	PageMetadata pageMetadata `json:"page_metadata"`
}

type pageMetadata struct {
	Page    int  `json:"page"`
	HasNext bool `json:"hasNext"`
}

// awardRow mirrors the field list requested in the payload.
type awardRow struct {
	AwardID          string      `json:"Award ID"`
	RecipientName    string      `json:"Recipient Name"`
	AwardAmount      json.Number `json:"Award Amount"`
	AwardDate        string      `json:"Award Date"`
	StartDate        string      `json:"Start Date"`
	EndDate          string      `json:"End Date"`
	AwardingAgency   string      `json:"Awarding Agency"`
	AwardingSub      string      `json:"Awarding Sub Agency"`
	AwardDescription string      `json:"Award Description"`
	NAICS            string      `json:"NAICS"`
	ContractType     string      `json:"Contract Award Type"`
}

// Field list the award search requests. Matches what the formatter reads.
var awardFields = []string{
	"Award ID",
	"Recipient Name",
	"Award Amount",
	"Award Date",
	"Start Date",
	"End Date",
	"Awarding Agency",
	"Awarding Sub Agency",
	"Award Description",
	"NAICS",
	"Contract Award Type",
	"Funding Agency",
	"Funding Sub Agency",
	"PSC",
	"piid",
}

// SearchAwards returns recent contract awards (types A/B/C) for an agency,
// optionally narrowed to a bureau. Pagination follows page_metadata.hasNext
// up to the configured page cap.
func (c *Client) SearchAwards(ctx context.Context, agency, bureau string) ([]Award, error) {
	var agencies []agencyFilter
	if bureau != "" {
		agencies = []agencyFilter{{
			Type:        "awarding",
			Tier:        "subtier",
			ToptierName: agency,
			Name:        bureau,
		}}
	} else {
		agencies = []agencyFilter{{
			Type: "awarding",
			Tier: "toptier",
			Name: agency,
		}}
	}

	year := c.now().Year()
	window := []timePeriod{{
		StartDate: fmt.Sprintf("%d-01-01", year-c.yearsBack),
		EndDate:   fmt.Sprintf("%d-12-31", year),
	}}

	var awards []Award
	for page := 1; page <= c.maxPages; page++ {
		payload := awardSearchRequest{
			Subawards: false,
			Limit:     c.pageLimit,
			Page:      page,
			Filters: awardSearchFilters{
				AwardTypeCodes: []string{"A", "B", "C"},
				TimePeriod:     window,
				Agencies:       agencies,
				Sort:           "date_signed",
				Order:          "desc",
			},
			Fields: awardFields,
		}

		resp, err := c.searchPage(ctx, payload)
		if err != nil {
			return nil, err
		}

		for _, row := range resp.Results {
			amount, _ := row.AwardAmount.Float64()
			awards = append(awards, Award{
				ID:          row.AwardID,
				Recipient:   row.RecipientName,
				Amount:      amount,
				Date:        row.AwardDate,
				StartDate:   row.StartDate,
				EndDate:     row.EndDate,
				Agency:      row.AwardingAgency,
				SubAgency:   row.AwardingSub,
				Description: row.AwardDescription,
				NAICS:       row.NAICS,
				Type:        row.ContractType,
			})
		}

		if !resp.PageMetadata.HasNext {
			break
		}
	}

	return awards, nil
}

// searchPage posts one page of the award search.
func (c *Client) searchPage(ctx context.Context, payload awardSearchRequest) (*awardSearchResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + "/api/v2/search/spending_by_award/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usaspending http %d: %s", httpResp.StatusCode, truncate(string(respBody), 200))
	}

	var resp awardSearchResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &resp, nil
}

// SubComponent is one bureau/sub-agency under a top-tier agency.
type SubComponent struct {
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation"`
	TotalBudget  float64 `json:"total_budgetary_resources"`
}

type subComponentsResponse struct {
	Results      []SubComponent `json:"results"`
	PageMetadata pageMetadata   `json:"page_metadata"`
}

// SubComponents lists the bureaus of a top-tier agency by its code (e.g.
// "097" for Department of Defense), following pagination to the end.
func (c *Client) SubComponents(ctx context.Context, agencyCode string) ([]SubComponent, error) {
	var all []SubComponent
	for page := 1; ; page++ {
		endpoint := fmt.Sprintf("%s/api/v2/agency/%s/sub_components/?page=%d", c.baseURL, agencyCode, page)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}

		respBody, err := io.ReadAll(httpResp.Body)
		_ = httpResp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		if httpResp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("usaspending http %d: %s", httpResp.StatusCode, truncate(string(respBody), 200))
		}

		var resp subComponentsResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return nil, fmt.Errorf("unmarshal response: %w", err)
		}

		all = append(all, resp.Results...)
		if !resp.PageMetadata.HasNext {
			break
		}
	}
	return all, nil
}

// FormatAwards renders awards as readable lines for the research context.
// The model consumes text, not JSON.
func FormatAwards(awards []Award) string {
	if len(awards) == 0 {
		return ""
	}

	var b strings.Builder
	for _, a := range awards {
		fmt.Fprintf(&b, "- %s awarded %s on %s", a.Recipient, formatAmount(a.Amount), a.Date)
		if a.SubAgency != "" {
			fmt.Fprintf(&b, " by %s", a.SubAgency)
		}
		if a.Type != "" {
			fmt.Fprintf(&b, " (%s)", a.Type)
		}
		if desc := strings.TrimSpace(a.Description); desc != "" {
			fmt.Fprintf(&b, ": %s", truncate(desc, 200))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// formatAmount renders a dollar amount with thousands separators.
func formatAmount(amount float64) string {
	whole := strconv.FormatFloat(amount, 'f', 0, 64)
	neg := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")

	var parts []string
	for len(whole) > 3 {
		parts = append([]string{whole[len(whole)-3:]}, parts...)
		whole = whole[:len(whole)-3]
	}
	parts = append([]string{whole}, parts...)

	out := "$" + strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
