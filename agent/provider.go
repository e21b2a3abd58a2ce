package agent

import (
	"fmt"
	"sort"
	"strings"
)

// Provider names the hosted model family an agent talks to.
type Provider string

const (
	// ProviderOpenAI uses a chat completion with a system message.
	ProviderOpenAI Provider = "openai"
	// ProviderAnthropic uses the messages API with a separate system parameter.
	ProviderAnthropic Provider = "anthropic"
	// ProviderGoogle uses a single combined-prompt generation.
	ProviderGoogle Provider = "google"
)

// callShape frames the transcript into the user prompt for one provider.
type callShape struct {
	frame func(transcript string) string
}

var callShapes = map[Provider]callShape{
	ProviderOpenAI: {
		frame: func(transcript string) string {
			return "Conversation log:\n" + transcript
		},
	},
	ProviderAnthropic: {
		frame: func(transcript string) string {
			return "Read the flow of the conversation so far and respond:\n" + transcript
		},
	},
	ProviderGoogle: {
		frame: func(transcript string) string {
			return "[Current conversation log]\n" + transcript + "\n\n[Your statement]:"
		},
	},
}

// Providers returns every known provider in lexical order.
func Providers() []Provider {
	out := make([]Provider, 0, len(callShapes))
	for p := range callShapes {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseProvider converts a case-insensitive name into a Provider.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown provider %q", s)
	}
	return p, nil
}

// Valid reports whether p has a registered call shape.
func (p Provider) Valid() bool {
	_, ok := callShapes[p]
	return ok
}

func (p Provider) String() string { return string(p) }
