package debate

import (
	"fmt"
	"strings"
)

// Transcript is the flat, append-only text shared with every speaker.
type Transcript struct {
	b     strings.Builder
	turns int
}

// NewTranscript seeds a transcript with the topic header line.
func NewTranscript(topic string) *Transcript {
	t := &Transcript{}
	fmt.Fprintf(&t.b, "Topic: %s\n", topic)
	return t
}

// Append adds one "[speaker]: reply" line.
func (t *Transcript) Append(speaker, reply string) {
	fmt.Fprintf(&t.b, "\n[%s]: %s", speaker, reply)
	t.turns++
}

// Turns returns how many lines have been appended.
func (t *Transcript) Turns() int { return t.turns }

func (t *Transcript) String() string { return t.b.String() }
