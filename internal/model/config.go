package model

import "time"

// Config is the complete runtime configuration, assembled once at startup
// from defaults, config file, environment, and flags, then passed into every
// component. Nothing reads ambient globals after construction.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http" mapstructure:"http"`
	Research ResearchConfig `yaml:"research" mapstructure:"research"`
	Review   ReviewConfig   `yaml:"review" mapstructure:"review"`
	LLM      LLMConfig      `yaml:"llm" mapstructure:"llm"`
	Spending SpendingConfig `yaml:"spending" mapstructure:"spending"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// HTTPConfig covers every outbound HTTP client.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// ResearchConfig bounds the gather stage.
type ResearchConfig struct {
	MaxSearchResults  int     `yaml:"max_search_results" mapstructure:"max_search_results"`
	MaxContextChars   int     `yaml:"max_context_chars" mapstructure:"max_context_chars"`
	PerSourceChars    int     `yaml:"per_source_chars" mapstructure:"per_source_chars"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
	RespectRobots     bool    `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// ReviewConfig bounds the generate → review → rewrite loop and the token
// budgets of its model calls.
type ReviewConfig struct {
	MaxIterations     int     `yaml:"max_iterations" mapstructure:"max_iterations"`
	Temperature       float32 `yaml:"temperature" mapstructure:"temperature"`
	DraftMaxTokens    int     `yaml:"draft_max_tokens" mapstructure:"draft_max_tokens"`
	CritiqueMaxTokens int     `yaml:"critique_max_tokens" mapstructure:"critique_max_tokens"`
	RewriteMaxTokens  int     `yaml:"rewrite_max_tokens" mapstructure:"rewrite_max_tokens"`
	AnalysisMaxTokens int     `yaml:"analysis_max_tokens" mapstructure:"analysis_max_tokens"`
}

// LLMConfig selects and configures the model provider.
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, "" = disabled
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"-" mapstructure:"-"` // From environment only, never the config file
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	Timeout  int    `yaml:"timeout" mapstructure:"timeout"` // seconds

	// Perplexity powers the web-research source adapter; it is independent
	// of the drafting/review provider and disabled without its key.
	PerplexityAPIKey string `yaml:"-" mapstructure:"-"`
	PerplexityModel  string `yaml:"perplexity_model" mapstructure:"perplexity_model"`
}

// SpendingConfig configures the procurement-data clients.
type SpendingConfig struct {
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
	SAMBaseURL string `yaml:"sam_base_url" mapstructure:"sam_base_url"`
	SAMAPIKey  string `yaml:"-" mapstructure:"-"`
	PageLimit  int    `yaml:"page_limit" mapstructure:"page_limit"` // Awards per page
	MaxPages   int    `yaml:"max_pages" mapstructure:"max_pages"`
	YearsBack  int    `yaml:"years_back" mapstructure:"years_back"` // Award window: Jan 1 of (now-YearsBack) .. Dec 31 of now
}

// CacheConfig controls the process-lifetime page cache. Nothing is ever
// persisted between runs.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls rendering and verbosity.
type OutputConfig struct {
	Verbose  bool   `yaml:"verbose" mapstructure:"verbose"`
	Dir      string `yaml:"dir" mapstructure:"dir"`
	PDF      bool   `yaml:"pdf" mapstructure:"pdf"`
	Markdown bool   `yaml:"markdown" mapstructure:"markdown"`
}

// DefaultConfig returns the built-in defaults, the lowest layer of the
// configuration hierarchy.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      20 * time.Second,
			UserAgent:    "govbrief/0.1 (+https://github.com/govbrief/govbrief)",
			MaxBodyBytes: 2_000_000,
		},
		Research: ResearchConfig{
			MaxSearchResults:  5,
			MaxContextChars:   24_000,
			PerSourceChars:    8_000,
			RequestsPerSecond: 1,
			Burst:             2,
			RespectRobots:     true,
		},
		Review: ReviewConfig{
			MaxIterations:     3,
			Temperature:       0.3,
			DraftMaxTokens:    1500,
			CritiqueMaxTokens: 600,
			RewriteMaxTokens:  1500,
			AnalysisMaxTokens: 2000,
		},
		LLM: LLMConfig{
			Provider:        "openai",
			Model:           "gpt-4o",
			Timeout:         60,
			PerplexityModel: "sonar",
		},
		Spending: SpendingConfig{
			BaseURL:    "https://api.usaspending.gov",
			SAMBaseURL: "https://api.sam.gov/prod/opportunities/v2/search",
			PageLimit:  10,
			MaxPages:   5,
			YearsBack:  1,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Output: OutputConfig{
			Dir:      ".",
			PDF:      true,
			Markdown: true,
		},
	}
}
