package spending

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SAMClient calls the SAM.gov opportunities v2 search API.
type SAMClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	pageLimit  int
}

// NewSAMClient creates a SAM.gov client. The API key is passed as a query
// parameter, per the API's contract.
func NewSAMClient(baseURL, apiKey string, httpClient *http.Client, pageLimit int) *SAMClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if pageLimit <= 0 {
		pageLimit = 10
	}
	return &SAMClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		pageLimit:  pageLimit,
	}
}

// Opportunity is one solicitation.
type Opportunity struct {
	Title        string `json:"title"`
	Solicitation string `json:"solicitationNumber"`
	Department   string `json:"fullParentPathName"`
	PostedDate   string `json:"postedDate"`
	Type         string `json:"type"`
	Deadline     string `json:"responseDeadLine"`
	NAICS        string `json:"naicsCode"`
}

type opportunitiesResponse struct {
	TotalRecords int           `json:"totalRecords"`
	Data         []Opportunity `json:"opportunitiesData"`
}

// Opportunities searches recent solicitations (ptype "o", solicitations as
// opposed to grants) for a department within the posted window.
func (c *SAMClient) Opportunities(ctx context.Context, department string, from, to time.Time) ([]Opportunity, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("SAM.gov API key is required")
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("ptype", "o")
	params.Set("deptname", department)
	params.Set("postedFrom", from.Format("01/02/2006"))
	params.Set("postedTo", to.Format("01/02/2006"))
	params.Set("page", "1")
	params.Set("limit", strconv.Itoa(c.pageLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

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
		return nil, fmt.Errorf("sam.gov http %d: %s", httpResp.StatusCode, truncate(string(respBody), 200))
	}

	var resp opportunitiesResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return resp.Data, nil
}

// FormatOpportunities renders solicitations as readable lines for the
// research context.
func FormatOpportunities(opps []Opportunity) string {
	if len(opps) == 0 {
		return ""
	}

	var b strings.Builder
	for _, o := range opps {
		fmt.Fprintf(&b, "- %s", o.Title)
		if o.Solicitation != "" {
			fmt.Fprintf(&b, " (%s)", o.Solicitation)
		}
		if o.PostedDate != "" {
			fmt.Fprintf(&b, ", posted %s", o.PostedDate)
		}
		if o.Deadline != "" {
			fmt.Fprintf(&b, ", responses due %s", o.Deadline)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
