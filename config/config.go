package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Research Research `yaml:"research"`
	LLM      LLM      `yaml:"llm"`
	Scoring  Scoring  `yaml:"scoring"`
	Workflow Workflow `yaml:"workflow"`
	Paths    Paths    `yaml:"paths"`
}

type Research struct {
	Sources          []string `yaml:"sources"` // hackernews | reddit | youtube
	Subreddits       []string `yaml:"subreddits"`
	TrendingLimit    int      `yaml:"trending_limit"`
	YouTubeRegion    string   `yaml:"youtube_region"`
	YouTubeCategory  string   `yaml:"youtube_category_id"`
	SourceTimeoutSec int      `yaml:"source_timeout_sec"`
}

// Agent holds the model settings for one LLM role
type Agent struct {
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type LLM struct {
	BaseURL        string `yaml:"base_url"`
	Scout          Agent  `yaml:"scout"`
	Writer         Agent  `yaml:"writer"`
	Validator      Agent  `yaml:"validator"`
	Metadata       Agent  `yaml:"metadata"`
	CallTimeoutSec int    `yaml:"call_timeout_sec"`
}

type Scoring struct {
	HeuristicWeight float64 `yaml:"heuristic_weight"`
	ModelWeight     float64 `yaml:"model_weight"`
}

type Workflow struct {
	LocalRetryAttempts int `yaml:"local_retry_attempts"`
	RetryBackoffMs     int `yaml:"retry_backoff_ms"`
}

type Paths struct {
	Profiles      string `yaml:"profiles"`
	TrendingCache string `yaml:"trending_cache"`
	Output        string `yaml:"output"`
}

// Load reads config.yaml, applies defaults and validates the scoring weights
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration used when no config.yaml exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if len(c.Research.Sources) == 0 {
		c.Research.Sources = []string{"hackernews"}
	}
	if len(c.Research.Subreddits) == 0 {
		c.Research.Subreddits = []string{"programming"}
	}
	if c.Research.TrendingLimit == 0 {
		c.Research.TrendingLimit = 10
	}
	if c.Research.YouTubeRegion == "" {
		c.Research.YouTubeRegion = "US"
	}
	if c.Research.YouTubeCategory == "" {
		c.Research.YouTubeCategory = "28" // Science & Technology
	}
	if c.Research.SourceTimeoutSec == 0 {
		c.Research.SourceTimeoutSec = 5
	}

	if c.LLM.Scout.Model == "" {
		c.LLM.Scout = Agent{Model: "gpt-4.1-mini", Temperature: 0.3, MaxTokens: 2048}
	}
	if c.LLM.Writer.Model == "" {
		c.LLM.Writer = Agent{Model: "gpt-4.1", Temperature: 0.8, MaxTokens: 8000}
	}
	if c.LLM.Validator.Model == "" {
		c.LLM.Validator = Agent{Model: "gpt-4.1-mini", Temperature: 0.2, MaxTokens: 2048}
	}
	if c.LLM.Metadata.Model == "" {
		c.LLM.Metadata = Agent{Model: "gpt-4.1-mini", Temperature: 0.7, MaxTokens: 2048}
	}
	if c.LLM.CallTimeoutSec == 0 {
		c.LLM.CallTimeoutSec = 90
	}

	if c.Scoring.HeuristicWeight == 0 && c.Scoring.ModelWeight == 0 {
		c.Scoring.HeuristicWeight = 0.5
		c.Scoring.ModelWeight = 0.5
	}

	if c.Workflow.LocalRetryAttempts == 0 {
		c.Workflow.LocalRetryAttempts = 2
	}
	if c.Workflow.RetryBackoffMs == 0 {
		c.Workflow.RetryBackoffMs = 500
	}

	if c.Paths.Profiles == "" {
		c.Paths.Profiles = "profiles"
	}
	if c.Paths.TrendingCache == "" {
		c.Paths.TrendingCache = "examples/cached_trending.json"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}
}

func (c *Config) validate() error {
	sum := c.Scoring.HeuristicWeight + c.Scoring.ModelWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %.3f", sum)
	}
	if c.Scoring.HeuristicWeight < 0 || c.Scoring.ModelWeight < 0 {
		return fmt.Errorf("scoring weights must be non-negative")
	}
	if c.Workflow.LocalRetryAttempts < 1 {
		return fmt.Errorf("workflow.local_retry_attempts must be >= 1")
	}
	return nil
}
