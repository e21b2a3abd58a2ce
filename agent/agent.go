package agent

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/logging"
	"github.com/hupe1980/roundtable/model"
)

// Agent produces one line of dialogue from the transcript so far.
type Agent interface {
	Name() string
	Speak(ctx context.Context, transcript string) Reply
}

// Options configures a ModelAgent.
type Options struct {
	// InstructionTemplate overrides DefaultInstructionTemplate.
	InstructionTemplate string
	// Output receives the "thinking" notice printed before every call.
	Output io.Writer
	Logger logging.Logger
}

// ModelAgent is an Agent backed by a model.Model. It is immutable after
// construction and safe to schedule several times in one debate.
type ModelAgent struct {
	def          Definition
	instructions string
	shape        callShape
	llm          model.Model
	out          io.Writer
	logger       logging.Logger
}

var _ Agent = (*ModelAgent)(nil)

// New creates a ModelAgent for def using llm. The call shape is chosen from
// def.Provider.
func New(def Definition, llm model.Model, optFns ...func(o *Options)) (*ModelAgent, error) {
	opts := Options{
		Output: os.Stdout,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	if llm == nil {
		return nil, fmt.Errorf("agent %q: model is nil", def.Name)
	}

	instructions, err := ComposeInstructions(opts.InstructionTemplate, def)
	if err != nil {
		return nil, err
	}

	return &ModelAgent{
		def:          def,
		instructions: instructions,
		shape:        callShapes[def.Provider],
		llm:          llm,
		out:          opts.Output,
		logger:       opts.Logger,
	}, nil
}

// Name returns the display name.
func (a *ModelAgent) Name() string { return a.def.Name }

// Provider returns the provider selected at construction.
func (a *ModelAgent) Provider() Provider { return a.def.Provider }

// ModelID returns the model identifier passed to the provider.
func (a *ModelAgent) ModelID() string { return a.def.ModelID }

// Instructions returns the composed system instructions.
func (a *ModelAgent) Instructions() string { return a.instructions }

// Speak sends the whole transcript to the model and returns its reply.
// Failures are reported through Reply.Err, never panics or errors.
func (a *ModelAgent) Speak(ctx context.Context, transcript string) Reply {
	fmt.Fprintf(a.out, "%s (%s) is thinking...\n", a.def.Name, a.def.ModelID)

	req := model.Request{
		Instructions: a.instructions,
		Contents:     []core.Content{core.NewUserText(a.shape.frame(transcript))},
	}

	start := time.Now()
	resp, err := model.Collect(ctx, a.llm, req)

	tokens := 0
	if resp.Usage != nil {
		tokens = resp.Usage.TotalTokens
	}
	logging.LogLLMCall(a.logger, string(a.def.Provider), a.def.ModelID, tokens, time.Since(start), err)

	reply := Reply{Speaker: a.def.Name, Provider: a.def.Provider}
	if err != nil {
		reply.Err = err
		return reply
	}
	reply.Text = resp.Content.Text()

	return reply
}
