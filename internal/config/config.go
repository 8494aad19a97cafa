package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "NEWS_POSTER_CONFIG"
	topicEnv         = "NEWS_TOPIC"
	autoPostEnv      = "AUTO_POST_TWEETS"
	postCountEnv     = "NUM_TWEETS_TO_POST"
	newsAPIKeyEnv    = "NEWS_API_KEY"
	databaseDSNEnv   = "DATABASE_DSN"
	chatGPTAPIKeyEnv = "CHATGPT_API_KEY"
	chatGPTModelEnv  = "CHATGPT_MODEL"
	twitterKeyEnv    = "API_KEY"
	twitterSecretEnv = "API_SECRET"
	accessTokenEnv   = "ACCESS_TOKEN"
	accessSecretEnv  = "ACCESS_TOKEN_SECRET"
)

// Config holds high-level settings required across the application.
type Config struct {
	Run       RunConfig       `yaml:"run"`
	Source    SourceConfig    `yaml:"source"`
	News      NewsAPIConfig   `yaml:"news"`
	ChatGPT   ChatGPTConfig   `yaml:"chatgpt"`
	Twitter   TwitterConfig   `yaml:"twitter"`
	Database  DatabaseConfig  `yaml:"database"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// RunConfig carries the per-run pipeline inputs.
type RunConfig struct {
	Topic       string `yaml:"topic"`
	AutoPublish bool   `yaml:"autoPublish"`
	PostCount   int    `yaml:"postCount"`
	FetchLimit  int    `yaml:"fetchLimit"`
}

// SourceConfig selects the news provider strategy and its options.
type SourceConfig struct {
	Provider string            `yaml:"provider"`
	Options  map[string]string `yaml:"options"`
}

// NewsAPIConfig describes the NewsAPI integration.
type NewsAPIConfig struct {
	APIKey string `yaml:"apiKey"`
}

// ChatGPTConfig defines how to contact the ChatGPT API.
type ChatGPTConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// TwitterConfig wires the OAuth1 user credentials for posting.
type TwitterConfig struct {
	APIKey       string `yaml:"apiKey"`
	APISecret    string `yaml:"apiSecret"`
	AccessToken  string `yaml:"accessToken"`
	AccessSecret string `yaml:"accessSecret"`
}

// Configured reports whether all four credentials are present.
func (t TwitterConfig) Configured() bool {
	return t.APIKey != "" && t.APISecret != "" && t.AccessToken != "" && t.AccessSecret != ""
}

// DatabaseConfig describes Postgres connection details. An empty DSN
// disables run persistence.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SchedulerConfig defines recurring execution; an empty interval means
// a single run.
type SchedulerConfig struct {
	Interval string `yaml:"interval"`
}

// Period resolves the interval string to a duration; zero when unset
// or unparseable.
func (s SchedulerConfig) Period() time.Duration {
	if s.Interval == "" {
		return 0
	}
	period, err := time.ParseDuration(s.Interval)
	if err != nil {
		log.Printf("config: invalid scheduler interval %q, running once", s.Interval)
		return 0
	}
	return period
}

// LoggingConfig selects handler level and format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(topicEnv); v != "" {
		c.Run.Topic = v
	}
	if v := os.Getenv(autoPostEnv); v != "" {
		c.Run.AutoPublish = strings.EqualFold(strings.TrimSpace(v), "true")
	}
	if v := os.Getenv(postCountEnv); v != "" {
		if count, err := strconv.Atoi(v); err == nil {
			c.Run.PostCount = count
		} else {
			log.Printf("config: invalid %s value %q, keeping %d", postCountEnv, v, c.Run.PostCount)
		}
	}

	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.News.APIKey = v
	}
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(chatGPTAPIKeyEnv); v != "" {
		c.ChatGPT.APIKey = v
	}
	if v := os.Getenv(chatGPTModelEnv); v != "" {
		c.ChatGPT.Model = v
	}

	if v := os.Getenv(twitterKeyEnv); v != "" {
		c.Twitter.APIKey = v
	}
	if v := os.Getenv(twitterSecretEnv); v != "" {
		c.Twitter.APISecret = v
	}
	if v := os.Getenv(accessTokenEnv); v != "" {
		c.Twitter.AccessToken = v
	}
	if v := os.Getenv(accessSecretEnv); v != "" {
		c.Twitter.AccessSecret = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Run.Topic != "" {
		base.Run.Topic = override.Run.Topic
	}
	if override.Run.PostCount != 0 {
		base.Run.PostCount = override.Run.PostCount
	}
	if override.Run.FetchLimit != 0 {
		base.Run.FetchLimit = override.Run.FetchLimit
	}
	if override.Run.AutoPublish {
		base.Run.AutoPublish = true
	}

	if override.Source.Provider != "" {
		base.Source = override.Source
	}
	if override.News.APIKey != "" {
		base.News.APIKey = override.News.APIKey
	}

	if override.ChatGPT.Endpoint != "" {
		base.ChatGPT.Endpoint = override.ChatGPT.Endpoint
	}
	if override.ChatGPT.Model != "" {
		base.ChatGPT.Model = override.ChatGPT.Model
	}
	if override.ChatGPT.APIKey != "" {
		base.ChatGPT.APIKey = override.ChatGPT.APIKey
	}
	if override.ChatGPT.SystemPrompt != "" {
		base.ChatGPT.SystemPrompt = override.ChatGPT.SystemPrompt
	}

	if override.Twitter.Configured() {
		base.Twitter = override.Twitter
	}
	if override.Database.DSN != "" {
		base.Database = override.Database
	}
	if override.Scheduler.Interval != "" {
		base.Scheduler = override.Scheduler
	}
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Run: RunConfig{
			Topic:       "india",
			AutoPublish: false,
			PostCount:   2,
			FetchLimit:  20,
		},
		Source: SourceConfig{Provider: "newsapi"},
		ChatGPT: ChatGPTConfig{
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4o-mini",
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}
