package validation

import (
	"github.com/hearthkit/servicekit/capability"
	"github.com/hearthkit/servicekit/schema"
)

// ArgumentValidator decides acceptance of caller-supplied arguments before a
// service executes.
type ArgumentValidator interface {
	// Validate checks args against the definition and the target entity's
	// capabilities. On success it returns the normalized argument map with
	// defaults applied; otherwise the first error in field declaration
	// order.
	Validate(def *schema.ServiceDefinition, entity capability.Entity, args map[string]any) (map[string]any, error)
}
