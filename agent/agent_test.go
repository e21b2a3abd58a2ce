package agent

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/internal/testutil"
	"github.com/hupe1980/roundtable/model"
	"github.com/hupe1980/roundtable/model/anthropic"
	"github.com/hupe1980/roundtable/model/gemini"
	"github.com/hupe1980/roundtable/model/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockModelImpl for testing agent wiring without a provider.
type MockModelImpl struct{ mock.Mock }

func (m *MockModelImpl) Generate(ctx context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	args := m.Called(ctx, req)

	respCh := make(chan model.Response, 1)
	errCh := make(chan error, 1)

	if err := args.Error(1); err != nil {
		errCh <- err
	} else {
		respCh <- model.Response{
			Content:      core.NewAssistantText(args.String(0)),
			FinishReason: "stop",
			Usage:        &model.TokenUsage{TotalTokens: 7},
		}
	}

	close(respCh)
	close(errCh)

	return respCh, errCh
}

func (m *MockModelImpl) Info() model.Info {
	return model.Info{Name: "mock", Provider: "mock"}
}

func testDefinition(p Provider) Definition {
	return Definition{
		Name:     "PM",
		Provider: p,
		ModelID:  "test-model",
		Role:     "Product manager who mediates",
		Style:    "Calm and pragmatic",
	}
}

func newTestAgent(t *testing.T, def Definition, llm model.Model, out *bytes.Buffer) *ModelAgent {
	t.Helper()

	a, err := New(def, llm, func(o *Options) { o.Output = out })
	require.NoError(t, err)

	return a
}

func TestNew_ComposesInstructions(t *testing.T) {
	a := newTestAgent(t, testDefinition(ProviderOpenAI), &MockModelImpl{}, &bytes.Buffer{})

	assert.Equal(t, "PM", a.Name())
	assert.Equal(t, ProviderOpenAI, a.Provider())
	assert.Equal(t, "test-model", a.ModelID())
	assert.Contains(t, a.Instructions(), "[Role]: PM")
	assert.Contains(t, a.Instructions(), "[Description]: Product manager who mediates")
	assert.Contains(t, a.Instructions(), "[Style]: Calm and pragmatic")
	assert.Contains(t, a.Instructions(), "three sentences or fewer")
}

func TestNew_RejectsInvalidDefinition(t *testing.T) {
	def := testDefinition("mistral")

	_, err := New(def, &MockModelImpl{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown provider "mistral"`)
}

func TestNew_RejectsNilModel(t *testing.T) {
	_, err := New(testDefinition(ProviderGoogle), nil)
	assert.Error(t, err)
}

func TestNew_CustomInstructionTemplate(t *testing.T) {
	a, err := New(testDefinition(ProviderGoogle), &MockModelImpl{}, func(o *Options) {
		o.InstructionTemplate = "You are {{.Name}}."
		o.Output = &bytes.Buffer{}
	})
	require.NoError(t, err)

	assert.Equal(t, "You are PM.", a.Instructions())
}

func TestSpeak_FramesTranscriptPerProvider(t *testing.T) {
	transcript := "Topic: pricing\n\n[Client]: too expensive"

	tests := []struct {
		provider Provider
		want     string
	}{
		{ProviderOpenAI, "Conversation log:\n" + transcript},
		{ProviderAnthropic, "Read the flow of the conversation so far and respond:\n" + transcript},
		{ProviderGoogle, "[Current conversation log]\n" + transcript + "\n\n[Your statement]:"},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			llm := &MockModelImpl{}
			a := newTestAgent(t, testDefinition(tt.provider), llm, &bytes.Buffer{})

			llm.On("Generate", mock.Anything, mock.MatchedBy(func(req model.Request) bool {
				return req.Instructions == a.Instructions() &&
					len(req.Contents) == 1 &&
					req.Contents[0].Role == core.RoleUser &&
					req.Contents[0].Text() == tt.want
			})).Return("fine", nil).Once()

			reply := a.Speak(context.Background(), transcript)

			assert.False(t, reply.Failed())
			assert.Equal(t, "fine", reply.String())
			llm.AssertExpectations(t)
		})
	}
}

func TestSpeak_PrintsThinkingNotice(t *testing.T) {
	llm := &MockModelImpl{}
	llm.On("Generate", mock.Anything, mock.Anything).Return("ok", nil)

	var out bytes.Buffer
	a := newTestAgent(t, testDefinition(ProviderOpenAI), llm, &out)
	a.Speak(context.Background(), "Topic: x\n")

	assert.Equal(t, "PM (test-model) is thinking...\n", out.String())
}

func TestSpeak_ErrorBecomesReply(t *testing.T) {
	llm := &MockModelImpl{}
	llm.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("rate limit exceeded"))

	a := newTestAgent(t, testDefinition(ProviderAnthropic), llm, &bytes.Buffer{})
	reply := a.Speak(context.Background(), "Topic: x\n")

	assert.True(t, reply.Failed())
	assert.Equal(t, "PM", reply.Speaker)
	assert.Equal(t, "[Error] anthropic call failed: rate limit exceeded", reply.String())
}

func TestSpeak_CancelledContextBecomesReply(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newTestAgent(t, testDefinition(ProviderGoogle), model.NewMockModel("m", "mock"), &bytes.Buffer{})
	reply := a.Speak(ctx, "Topic: x\n")

	require.True(t, reply.Failed())
	assert.ErrorIs(t, reply.Err, context.Canceled)
	assert.True(t, strings.HasPrefix(reply.String(), "[Error] google call failed: "))
}

// Each provider adapter against its fake vendor server: the fixed reply comes
// back verbatim and failures are absorbed into the reply.
func TestSpeak_GeminiBlockedCandidateIsFailedReply(t *testing.T) {
	srv := testutil.NewGeminiServer(t, testutil.Echo("unused"))
	srv.RespondWith(map[string]any{
		"candidates": []any{map[string]any{"finishReason": "SAFETY"}},
	})
	llm, err := gemini.NewModel(context.Background(), func(o *gemini.Options) {
		o.Model, o.APIKey, o.BaseURL = "gemini-test", "k", srv.URL
	})
	require.NoError(t, err)
	a := newTestAgent(t, testDefinition(ProviderGoogle), llm, &bytes.Buffer{})

	reply := a.Speak(context.Background(), "Topic: x\n")

	require.True(t, reply.Failed())
	assert.ErrorIs(t, reply.Err, model.ErrEmptyResponse)
	assert.True(t, strings.HasPrefix(reply.String(), "[Error] google call failed:"))
}

func TestSpeak_RealAdapters(t *testing.T) {
	type setup struct {
		provider Provider
		server   func(t testing.TB, reply testutil.ReplyFunc) *testutil.FakeProvider
		model    func(t *testing.T, url string) model.Model
	}

	setups := []setup{
		{
			provider: ProviderOpenAI,
			server:   testutil.NewOpenAIServer,
			model: func(_ *testing.T, url string) model.Model {
				return openai.NewModel(func(o *openai.Options) {
					o.Model, o.APIKey, o.BaseURL = "gpt-test", "k", url
				})
			},
		},
		{
			provider: ProviderAnthropic,
			server:   testutil.NewAnthropicServer,
			model: func(_ *testing.T, url string) model.Model {
				return anthropic.NewModel(func(o *anthropic.Options) {
					o.Model, o.APIKey, o.BaseURL = "claude-test", "k", url
				})
			},
		},
		{
			provider: ProviderGoogle,
			server:   testutil.NewGeminiServer,
			model: func(t *testing.T, url string) model.Model {
				m, err := gemini.NewModel(context.Background(), func(o *gemini.Options) {
					o.Model, o.APIKey, o.BaseURL = "gemini-test", "k", url
				})
				require.NoError(t, err)
				return m
			},
		},
	}

	for _, s := range setups {
		t.Run(string(s.provider)+"/success", func(t *testing.T) {
			srv := s.server(t, testutil.Echo("the fixed reply"))
			a := newTestAgent(t, testDefinition(s.provider), s.model(t, srv.URL), &bytes.Buffer{})

			reply := a.Speak(context.Background(), "Topic: x\n")

			require.NoError(t, reply.Err)
			assert.Equal(t, "the fixed reply", reply.String())
			assert.Len(t, srv.Requests(), 1)
		})

		t.Run(string(s.provider)+"/failure", func(t *testing.T) {
			srv := s.server(t, testutil.Echo("unused"))
			srv.FailWith(http.StatusUnauthorized, "bad credentials")
			a := newTestAgent(t, testDefinition(s.provider), s.model(t, srv.URL), &bytes.Buffer{})

			var reply Reply
			assert.NotPanics(t, func() { reply = a.Speak(context.Background(), "Topic: x\n") })

			assert.True(t, reply.Failed())
			assert.Contains(t, reply.String(), string(s.provider))
			assert.Contains(t, reply.String(), "bad credentials")
			assert.Len(t, srv.Requests(), 1)
		})
	}
}
