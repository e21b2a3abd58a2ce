package agent

import (
	"context"
	"fmt"

	"github.com/hupe1980/roundtable/model"
	"github.com/hupe1980/roundtable/model/anthropic"
	"github.com/hupe1980/roundtable/model/gemini"
	"github.com/hupe1980/roundtable/model/openai"
)

// modelConstructor builds the provider model for one definition.
type modelConstructor func(ctx context.Context, def Definition, apiKey string) (model.Model, error)

var modelConstructors = map[Provider]modelConstructor{
	ProviderOpenAI: func(_ context.Context, def Definition, apiKey string) (model.Model, error) {
		return openai.NewModel(func(o *openai.Options) {
			o.Model = def.ModelID
			o.APIKey = apiKey
		}), nil
	},
	ProviderAnthropic: func(_ context.Context, def Definition, apiKey string) (model.Model, error) {
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.Model = anthropic.Model(def.ModelID)
			o.APIKey = apiKey
		}), nil
	},
	ProviderGoogle: func(ctx context.Context, def Definition, apiKey string) (model.Model, error) {
		return gemini.NewModel(ctx, func(o *gemini.Options) {
			o.Model = def.ModelID
			o.APIKey = apiKey
		})
	},
}

// NewModel builds the provider model described by def. def.ModelID is the
// only source of the model id sent to the provider.
func NewModel(ctx context.Context, def Definition, apiKey string) (model.Model, error) {
	build, ok := modelConstructors[def.Provider]
	if !ok {
		return nil, fmt.Errorf("no model constructor for provider %q", def.Provider)
	}
	return build(ctx, def, apiKey)
}

// NewFromDefinition builds the model for def and wraps it in an agent.
func NewFromDefinition(ctx context.Context, def Definition, apiKey string, optFns ...func(o *Options)) (*ModelAgent, error) {
	llm, err := NewModel(ctx, def, apiKey)
	if err != nil {
		return nil, fmt.Errorf("agent %q: %w", def.Name, err)
	}
	return New(def, llm, optFns...)
}
