package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/roundtable/agent"
)

// Environment variables holding provider API keys.
const (
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
	EnvGeminiKey    = "GEMINI_API_KEY"
)

var credentialEnv = map[agent.Provider]string{
	agent.ProviderOpenAI:    EnvOpenAIKey,
	agent.ProviderAnthropic: EnvAnthropicKey,
	agent.ProviderGoogle:    EnvGeminiKey,
}

// RequiredProviders lists the providers whose keys must be present before a
// run starts, regardless of which of them the panel seats.
func RequiredProviders() []agent.Provider {
	return []agent.Provider{agent.ProviderOpenAI, agent.ProviderAnthropic, agent.ProviderGoogle}
}

// EnvVar returns the environment variable holding the API key of p.
func EnvVar(p agent.Provider) string { return credentialEnv[p] }

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Credentials maps providers to API keys.
type Credentials map[agent.Provider]string

// LoadCredentials reads every known provider key using lookup. A nil lookup
// uses os.LookupEnv. Blank values count as missing.
func LoadCredentials(lookup LookupFunc) Credentials {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	creds := Credentials{}
	for p, key := range credentialEnv {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			creds[p] = strings.TrimSpace(v)
		}
	}
	return creds
}

// MissingEnvError lists every required variable that was not set.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Vars, ", "))
}

// Require checks that a key is present for each provider. All missing
// variables are reported together, in the order the providers were given.
func (c Credentials) Require(providers ...agent.Provider) error {
	var missing []string
	seen := map[agent.Provider]bool{}
	for _, p := range providers {
		if seen[p] {
			continue
		}
		seen[p] = true
		if c[p] == "" {
			missing = append(missing, EnvVar(p))
		}
	}
	if len(missing) > 0 {
		return &MissingEnvError{Vars: missing}
	}
	return nil
}
