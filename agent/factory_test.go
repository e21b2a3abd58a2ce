package agent

import (
	"bytes"
	"context"
	"testing"

	"github.com/hupe1980/roundtable/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModel(t *testing.T) {
	for _, p := range Providers() {
		t.Run(string(p), func(t *testing.T) {
			m, err := NewModel(context.Background(), Definition{Name: "X", Provider: p, ModelID: "model-x"}, "key")
			require.NoError(t, err)
			assert.Equal(t, model.Info{Name: "model-x", Provider: string(p)}, m.Info())
		})
	}

	_, err := NewModel(context.Background(), Definition{Provider: "cohere"}, "key")
	assert.ErrorContains(t, err, `provider "cohere"`)
}

func TestNewFromDefinition_ModelIDComesFromDefinition(t *testing.T) {
	def := testDefinition(ProviderOpenAI)
	def.ModelID = "gpt-from-definition"
	out := &bytes.Buffer{}

	a, err := NewFromDefinition(context.Background(), def, "key", func(o *Options) { o.Output = out })
	require.NoError(t, err)

	assert.Equal(t, "gpt-from-definition", a.ModelID())
	assert.Equal(t, "gpt-from-definition", a.llm.Info().Name)
}

func TestNewFromDefinition_UnknownProvider(t *testing.T) {
	_, err := NewFromDefinition(context.Background(), Definition{Name: "X", Provider: "cohere", ModelID: "m"}, "key")
	assert.ErrorContains(t, err, `agent "X"`)
}
