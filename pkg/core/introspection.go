package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	BackendType   string `json:"backend_type"`
	ReadOnly      bool   `json:"read_only"`
	Subscribers   int    `json:"subscribers"`
	DroppedEvents uint64 `json:"dropped_events"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	backendType := "backend"
	if comp, ok := s.backend.(introspection.Component); ok {
		backendType = comp.ComponentType()
	}

	return ServiceState{
		BackendType:   backendType,
		ReadOnly:      s.readOnly,
		Subscribers:   s.events.subscriberCount(),
		DroppedEvents: s.events.droppedCount(),
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
