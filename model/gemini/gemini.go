// Package gemini provides a model wrapper for the Google Gemini API. Gemini
// receives a single combined prompt: the instructions and every content are
// joined into one text with no separate system channel.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/model"
	"google.golang.org/genai"
)

// ProviderName identifies this adapter in model.Info and error messages.
const ProviderName = "google"

// Options configures the Gemini model adapter.
type Options struct {
	Model   string
	APIKey  string
	BaseURL string
}

// Model wraps the Gemini GenerateContent API behind the generic model.Model interface.
type Model struct {
	client *genai.Client
	opts   Options
}

// NewModel creates a new Gemini model backed by the Gemini Developer API.
func NewModel(ctx context.Context, optFns ...func(o *Options)) (*Model, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Model{client: client, opts: opts}, nil
}

// NewModelFromClient creates a new Gemini model from an existing client.
func NewModelFromClient(client *genai.Client, optFns ...func(o *Options)) *Model {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

func defaultOptions() Options {
	return Options{Model: "gemini-1.5-flash"}
}

// Generate implements model.Model with a single combined-prompt generation call.
func (m *Model) Generate(ctx context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	out := make(chan model.Response, 1)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		resp, err := m.client.Models.GenerateContent(ctx, m.opts.Model, genai.Text(buildPrompt(req)), nil)
		if err != nil {
			errCh <- fmt.Errorf("gemini api error: %w", err)
			return
		}
		if len(resp.Candidates) == 0 {
			errCh <- fmt.Errorf("no candidates returned: %w", model.ErrEmptyResponse)
			return
		}

		finishReason := string(resp.Candidates[0].FinishReason)
		text := resp.Text()
		if text == "" {
			errCh <- fmt.Errorf("no text in candidate (finish reason %s): %w", finishReason, model.ErrEmptyResponse)
			return
		}

		r := model.Response{
			Content:      core.NewAssistantText(text),
			FinishReason: finishReason,
		}
		if u := resp.UsageMetadata; u != nil {
			r.Usage = &model.TokenUsage{
				PromptTokens:     int(u.PromptTokenCount),
				CompletionTokens: int(u.CandidatesTokenCount),
				TotalTokens:      int(u.TotalTokenCount),
			}
		}

		out <- r
	}()

	return out, errCh
}

// buildPrompt joins instructions and contents into one prompt string.
func buildPrompt(req model.Request) string {
	sections := make([]string, 0, len(req.Contents)+1)
	if req.Instructions != "" {
		sections = append(sections, req.Instructions)
	}
	for _, c := range req.Contents {
		if text := c.Text(); text != "" {
			sections = append(sections, text)
		}
	}
	return strings.Join(sections, "\n\n")
}

// Info returns metadata describing this Gemini model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:     m.opts.Model,
		Provider: ProviderName,
	}
}
