package api

import (
	"fmt"

	"github.com/google/uuid"
)

// Ref is an opaque token identifying an abstract capability. Refs are
// always handled as *Ref so equality is pointer identity; the name and
// uuid exist for diagnostics only and play no part in comparison or
// registry lookup.
type Ref struct {
	id   uuid.UUID
	name string
}

// NewRef creates a new reference with a display name. Every call
// returns a distinct reference, including calls with the same name.
func NewRef(name string) *Ref {
	return &Ref{id: uuid.New(), name: name}
}

// Name returns the display name given at creation.
func (r *Ref) Name() string { return r.name }

// ID returns the unique handle assigned at creation.
func (r *Ref) ID() uuid.UUID { return r.id }

// String renders the name with a short id suffix so same-named refs
// stay distinguishable in logs and error chains.
func (r *Ref) String() string {
	if r == nil {
		return "<nil ref>"
	}
	return fmt.Sprintf("%s[%s]", r.name, r.id.String()[:8])
}
