package llm

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// hostedProviders maps each hosted provider to the environment variable
// holding its API key and its constructor.
var hostedProviders = map[string]struct {
	keyEnv string
	build  func(apiKey, model string) Provider
}{
	"anthropic":  {"ANTHROPIC_API_KEY", func(k, m string) Provider { return NewAnthropicProvider(k, m) }},
	"openai":     {"OPENAI_API_KEY", func(k, m string) Provider { return NewOpenAIProvider(k, m) }},
	"openrouter": {"OPENROUTER_API_KEY", func(k, m string) Provider { return NewOpenRouterProvider(k, m) }},
	"google":     {"GOOGLE_API_KEY", func(k, m string) Provider { return NewGoogleProvider(k, m) }},
}

// defaultOllamaHost is used when OLLAMA_HOST is unset.
const defaultOllamaHost = "http://localhost:11434"

// NewProvider creates the generation client for providerType and model.
// Hosted providers read their API key from the conventional environment
// variable; Ollama reads OLLAMA_HOST and needs no key.
func NewProvider(providerType string, model string) (Provider, error) {
	if providerType == "ollama" {
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = defaultOllamaHost
		}
		return NewOllamaProvider(host, model), nil
	}

	hp, ok := hostedProviders[providerType]
	if !ok {
		return nil, fmt.Errorf("unsupported provider type %q (want one of %s)", providerType, strings.Join(ProviderTypes(), ", "))
	}
	apiKey := os.Getenv(hp.keyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable is not set (required for the %s provider)", hp.keyEnv, providerType)
	}
	return hp.build(apiKey, model), nil
}

// ProviderTypes lists every provider NewProvider accepts, sorted.
func ProviderTypes() []string {
	out := []string{"ollama"}
	for name := range hostedProviders {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
