// Package event implements the named, value-typed message system: the
// priority-ordered subscription broker and the LIFO event stack that the
// frame scheduler drains each frame (§4.3).
package event

import (
	"github.com/cuemby/loom/pkg/entity"
	"github.com/cuemby/loom/pkg/ident"
)

// Event is an owned name plus an owned payload buffer, attached to the
// entity it is bound to in the stack (§3 "Event"). Owner is the root when
// the event was pushed detached, or the pushing entity otherwise.
type Event struct {
	Name    ident.Identifier
	Payload []byte
	Owner   *entity.Entity
}
