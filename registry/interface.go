package registry

import "github.com/hearthkit/servicekit/schema"

// ServiceRegistry is the read surface of the process-wide service table.
type ServiceRegistry interface {
	// Get returns the definition for a service identifier.
	Get(id string) (*schema.ServiceDefinition, bool)

	// List returns all registered service identifiers, sorted.
	List() []string

	// Snapshot returns the current definitions in registration order.
	Snapshot() []*schema.ServiceDefinition
}
