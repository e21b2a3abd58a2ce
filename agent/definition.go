package agent

import (
	"errors"
	"fmt"
	"strings"
)

// Definition describes one panel member.
type Definition struct {
	Name     string   `yaml:"name"`
	Provider Provider `yaml:"provider"`
	ModelID  string   `yaml:"model"`
	Role     string   `yaml:"role"`
	Style    string   `yaml:"style"`
}

// Validate checks that the definition can be turned into an agent.
func (d Definition) Validate() error {
	var errs []error
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if !d.Provider.Valid() {
		errs = append(errs, fmt.Errorf("unknown provider %q", d.Provider))
	}
	if strings.TrimSpace(d.ModelID) == "" {
		errs = append(errs, errors.New("model is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("agent %q: %w", d.Name, err)
	}
	return nil
}
