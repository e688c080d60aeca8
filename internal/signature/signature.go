package signature

import (
	"strings"

	"munidocs/internal/domain"
)

// Separator sits between the generated text and the attribution block.
const Separator = "\n\n---\n"

// Composer appends the staff attribution block to generated text.
type Composer struct {
	institution string
	defaultRole string
}

// NewComposer creates a Composer for the given institution. defaultRole is
// used when the caller has no role.
func NewComposer(institution, defaultRole string) *Composer {
	return &Composer{institution: institution, defaultRole: defaultRole}
}

// Compose returns text followed by the attribution block. Without a caller
// name the text is returned unchanged.
func (c *Composer) Compose(text string, caller domain.Caller) string {
	name := strings.TrimSpace(caller.Name)
	if name == "" {
		return text
	}
	role := strings.TrimSpace(caller.Role)
	if role == "" {
		role = c.defaultRole
	}
	return text + Separator + name + "\n" + role + "\n" + c.institution
}
