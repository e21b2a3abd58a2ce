package debate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hupe1980/roundtable/agent"
	"github.com/hupe1980/roundtable/logging"
)

// DefaultPause is the delay between two turns, long enough for a human to read.
const DefaultPause = 1500 * time.Millisecond

// Options configures a Debate.
type Options struct {
	Pause  time.Duration
	Output io.Writer
	Logger logging.Logger
}

// Debate owns a fixed speaker schedule.
type Debate struct {
	schedule []agent.Agent
	pause    time.Duration
	out      io.Writer
	logger   logging.Logger
	wait     func(ctx context.Context, d time.Duration) error
}

// New creates a Debate over schedule. The schedule is copied.
func New(schedule []agent.Agent, optFns ...func(o *Options)) (*Debate, error) {
	opts := Options{
		Pause:  DefaultPause,
		Output: os.Stdout,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if len(schedule) == 0 {
		return nil, errors.New("schedule is empty")
	}
	for i, a := range schedule {
		if a == nil {
			return nil, fmt.Errorf("schedule position %d: nil agent", i)
		}
	}

	return &Debate{
		schedule: append([]agent.Agent(nil), schedule...),
		pause:    opts.Pause,
		out:      opts.Output,
		logger:   opts.Logger,
		wait:     sleep,
	}, nil
}

// Run plays the whole schedule for topic and returns the final transcript.
// Failed provider calls become dialogue lines and never stop the run; the
// only error is cancellation of ctx, in which case the partial transcript is
// returned alongside it.
func (d *Debate) Run(ctx context.Context, topic string) (*Transcript, error) {
	transcript := NewTranscript(topic)
	printBanner(d.out, topic)

	start := time.Now()
	d.logger.Info("Debate started", "topic", topic, "turns", len(d.schedule))

	failures := 0
	for i, speaker := range d.schedule {
		if err := ctx.Err(); err != nil {
			return transcript, err
		}

		reply := speaker.Speak(ctx, transcript.String())
		if reply.Failed() {
			failures++
			d.logger.Warn("Turn produced an error reply", "turn", i+1, "speaker", speaker.Name(), "error", reply.Err.Error())
		}

		text := reply.String()
		printTurn(d.out, speaker.Name(), text)
		transcript.Append(speaker.Name(), text)
		d.logger.Debug("Turn completed", "turn", i+1, "speaker", speaker.Name())

		if d.pause > 0 && i < len(d.schedule)-1 {
			if err := d.wait(ctx, d.pause); err != nil {
				return transcript, err
			}
		}
	}

	d.logger.Info("Debate finished", "turns", transcript.Turns(), "failed_turns", failures, "duration", time.Since(start))

	return transcript, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
