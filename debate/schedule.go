package debate

import (
	"fmt"

	"github.com/hupe1980/roundtable/agent"
)

// ResolveSchedule maps speaker names onto agents. Names may repeat; every
// name must belong to exactly one agent.
func ResolveSchedule(agents []agent.Agent, names []string) ([]agent.Agent, error) {
	byName := make(map[string]agent.Agent, len(agents))
	for _, a := range agents {
		if _, dup := byName[a.Name()]; dup {
			return nil, fmt.Errorf("duplicate agent name %q", a.Name())
		}
		byName[a.Name()] = a
	}

	schedule := make([]agent.Agent, 0, len(names))
	for i, name := range names {
		a, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("schedule position %d: unknown speaker %q", i, name)
		}
		schedule = append(schedule, a)
	}

	return schedule, nil
}
