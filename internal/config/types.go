package config

// QualityTier trades speed and cost against output quality.
type QualityTier string

const (
	QualityLite   QualityTier = "lite"
	QualityNormal QualityTier = "normal"
	QualityMax    QualityTier = "max"
)

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderAnthropic  ProviderType = "anthropic"
	ProviderOpenAI     ProviderType = "openai"
	ProviderGoogle     ProviderType = "google"
	ProviderOllama     ProviderType = "ollama"
	ProviderOpenRouter ProviderType = "openrouter"
)

// Environment selects how much detail user-facing errors carry and how
// logs are formatted.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Config is the top-level sitecraft configuration, corresponding to .sitecraft.yml.
type Config struct {
	Provider      ProviderType `yaml:"provider" koanf:"provider"`
	Model         string       `yaml:"model" koanf:"model"`
	FallbackModel string       `yaml:"fallback_model" koanf:"fallback_model"`
	Quality       QualityTier  `yaml:"quality" koanf:"quality"`
	Temperature   float64      `yaml:"temperature" koanf:"temperature"`

	GenerateMaxTokens int `yaml:"generate_max_tokens" koanf:"generate_max_tokens"`
	ModifyMaxTokens   int `yaml:"modify_max_tokens" koanf:"modify_max_tokens"`
	RateLimitRPM      int `yaml:"rate_limit_rpm" koanf:"rate_limit_rpm"`

	Environment     Environment `yaml:"environment" koanf:"environment"`
	LogLevel        string      `yaml:"log_level" koanf:"log_level"`
	HistoryLimit    int         `yaml:"history_limit" koanf:"history_limit"`
	RenderCacheSize int         `yaml:"render_cache_size" koanf:"render_cache_size"`
	DataDir         string      `yaml:"data_dir" koanf:"data_dir"`
	Port            int         `yaml:"port" koanf:"port"`
}
