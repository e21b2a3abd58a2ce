package agent

import (
	"fmt"

	"github.com/hupe1980/roundtable/internal/util"
)

// DefaultInstructionTemplate renders the fixed system instructions of an agent.
// It has access to the Definition fields.
const DefaultInstructionTemplate = `[Role]: {{.Name}}
[Description]: {{.Role}}
[Style]: {{.Style}}

We are in the middle of a business roundtable.
Follow the flow of the conversation and make a sharp statement that fits your role, in three sentences or fewer.`

// ComposeInstructions renders tmpl against def. An empty tmpl falls back to
// DefaultInstructionTemplate.
func ComposeInstructions(tmpl string, def Definition) (string, error) {
	if tmpl == "" {
		tmpl = DefaultInstructionTemplate
	}
	text, err := util.RenderTemplate("instructions", tmpl, def)
	if err != nil {
		return "", fmt.Errorf("compose instructions for %q: %w", def.Name, err)
	}
	return text, nil
}
