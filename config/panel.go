package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hupe1980/roundtable/agent"
	"github.com/hupe1980/roundtable/debate"
	"gopkg.in/yaml.v3"
)

// Panel is the full description of one roundtable.
type Panel struct {
	Topic    string             `yaml:"topic"`
	Agents   []agent.Definition `yaml:"agents"`
	Schedule []string           `yaml:"schedule"`
	Pause    time.Duration      `yaml:"pause"`
}

// DefaultPanel returns the built-in roundtable: a client, a statistician and
// a product manager discussing an AI chatbot feature.
func DefaultPanel() Panel {
	return Panel{
		Topic: "Should we add an 'AI chatbot' feature to our new product?",
		Agents: []agent.Definition{
			{
				Name:     "Client",
				Provider: agent.ProviderOpenAI,
				ModelID:  "gpt-4o",
				Role:     "A demanding customer who pays for the product and complains about anything that wastes their money or time.",
				Style:    "Emotional, impatient, speaks from personal experience.",
			},
			{
				Name:     "Statistician",
				Provider: agent.ProviderAnthropic,
				ModelID:  "claude-3-5-sonnet-20241022",
				Role:     "A data scientist who only trusts numbers and pushes back on claims without evidence.",
				Style:    "Cold, precise, cites metrics and sample sizes.",
			},
			{
				Name:     "PM",
				Provider: agent.ProviderGoogle,
				ModelID:  "gemini-1.5-pro",
				Role:     "The product manager who has to ship something and balances customer pain against data and cost.",
				Style:    "Diplomatic, decisive, always ends with a next step.",
			},
		},
		Schedule: []string{"Client", "Statistician", "PM", "Client", "PM"},
		Pause:    debate.DefaultPause,
	}
}

// LoadPanel reads a YAML panel file. Fields absent from the file keep the
// values of DefaultPanel.
func LoadPanel(path string) (Panel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Panel{}, fmt.Errorf("read panel: %w", err)
	}
	return ParsePanel(data)
}

// panelFile is the on-disk form of a Panel. Pause is a pointer so that an
// explicit "pause: 0" can be told apart from an absent key.
type panelFile struct {
	Topic    string             `yaml:"topic"`
	Agents   []agent.Definition `yaml:"agents"`
	Schedule []string           `yaml:"schedule"`
	Pause    *time.Duration     `yaml:"pause"`
}

// ParsePanel decodes YAML panel data on top of DefaultPanel.
func ParsePanel(data []byte) (Panel, error) {
	p := DefaultPanel()
	var file panelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Panel{}, fmt.Errorf("parse panel: %w", err)
	}
	if file.Topic != "" {
		p.Topic = file.Topic
	}
	if len(file.Agents) > 0 {
		p.Agents = file.Agents
		// A custom cast needs its own schedule.
		p.Schedule = nil
	}
	if len(file.Schedule) > 0 {
		p.Schedule = file.Schedule
	}
	if file.Pause != nil {
		p.Pause = *file.Pause
	}
	return p, nil
}

// Validate checks the panel for consistency. All problems are reported.
func (p Panel) Validate() error {
	var errs []error
	if len(p.Agents) == 0 {
		errs = append(errs, errors.New("panel has no agents"))
	}
	if len(p.Schedule) == 0 {
		errs = append(errs, errors.New("panel has an empty schedule"))
	}
	if p.Pause < 0 {
		errs = append(errs, fmt.Errorf("pause must not be negative, got %s", p.Pause))
	}

	names := make(map[string]bool, len(p.Agents))
	for _, def := range p.Agents {
		if err := def.Validate(); err != nil {
			errs = append(errs, err)
		}
		if names[def.Name] {
			errs = append(errs, fmt.Errorf("duplicate agent name %q", def.Name))
		}
		names[def.Name] = true
	}
	for i, name := range p.Schedule {
		if !names[name] {
			errs = append(errs, fmt.Errorf("schedule position %d: unknown speaker %q", i, name))
		}
	}

	return errors.Join(errs...)
}

// Providers returns the distinct providers used by the panel, in agent order.
func (p Panel) Providers() []agent.Provider {
	var out []agent.Provider
	seen := map[agent.Provider]bool{}
	for _, def := range p.Agents {
		if !seen[def.Provider] {
			seen[def.Provider] = true
			out = append(out, def.Provider)
		}
	}
	return out
}
