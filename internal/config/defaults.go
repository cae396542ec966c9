package config

// QualityPreset describes the models to use for a given quality tier.
type QualityPreset struct {
	Model         string
	FallbackModel string
}

// qualityPresets maps each provider+quality combination to its model choices.
var qualityPresets = map[ProviderType]map[QualityTier]QualityPreset{
	ProviderOpenAI: {
		QualityLite:   {Model: "gpt-4o-mini", FallbackModel: "gpt-4o"},
		QualityNormal: {Model: "gpt-4o", FallbackModel: "gpt-4-turbo-preview"},
		QualityMax:    {Model: "gpt-4o", FallbackModel: "gpt-4-turbo-preview"},
	},
	ProviderAnthropic: {
		QualityLite:   {Model: "claude-haiku-4-5-20251001", FallbackModel: "claude-sonnet-4-5-20250929"},
		QualityNormal: {Model: "claude-sonnet-4-5-20250929", FallbackModel: "claude-haiku-4-5-20251001"},
		QualityMax:    {Model: "claude-sonnet-4-5-20250929", FallbackModel: "claude-haiku-4-5-20251001"},
	},
	ProviderGoogle: {
		QualityLite:   {Model: "gemini-2.0-flash", FallbackModel: "gemini-1.5-pro"},
		QualityNormal: {Model: "gemini-1.5-pro", FallbackModel: "gemini-2.0-flash"},
		QualityMax:    {Model: "gemini-1.5-pro", FallbackModel: "gemini-2.0-flash"},
	},
	ProviderOllama: {
		QualityLite:   {Model: "llama3", FallbackModel: ""},
		QualityNormal: {Model: "llama3", FallbackModel: ""},
		QualityMax:    {Model: "llama3:70b", FallbackModel: "llama3"},
	},
	ProviderOpenRouter: {
		QualityLite:   {Model: "openai/gpt-4o-mini", FallbackModel: "openai/gpt-4o"},
		QualityNormal: {Model: "openai/gpt-4o", FallbackModel: "anthropic/claude-sonnet-4.5"},
		QualityMax:    {Model: "openai/gpt-4o", FallbackModel: "anthropic/claude-sonnet-4.5"},
	},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             "gpt-4o",
		FallbackModel:     "gpt-4-turbo-preview",
		Quality:           QualityNormal,
		Temperature:       0.7,
		GenerateMaxTokens: 6000,
		ModifyMaxTokens:   3000,
		RateLimitRPM:      0,
		Environment:       EnvDevelopment,
		LogLevel:          "info",
		HistoryLimit:      100,
		RenderCacheSize:   64,
		DataDir:           ".sitecraft",
		Port:              8080,
	}
}

// GetPreset returns the quality preset for the given provider and tier.
// Returns the Normal OpenAI preset if the combination is not found.
func GetPreset(provider ProviderType, tier QualityTier) QualityPreset {
	if tiers, ok := qualityPresets[provider]; ok {
		if preset, ok := tiers[tier]; ok {
			return preset
		}
	}
	return qualityPresets[ProviderOpenAI][QualityNormal]
}
