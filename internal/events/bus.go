// Package events carries flow transitions from the orchestrator to the rest of the application.
package events

import (
	evbus "github.com/asaskevich/EventBus"
	"github.com/pkg/errors"

	"github.com/dracma/presale/internal/domain"
)

// TopicTransition is published for every step change of every flow
const TopicTransition = "tx:transition"

// Bus is the application-wide event bus, created once in main and passed to constructors
type Bus struct {
	bus evbus.Bus
}

func New() *Bus {
	return &Bus{bus: evbus.New()}
}

// PublishTransition delivers t to every transition handler
func (b *Bus) PublishTransition(t domain.Transition) {
	b.bus.Publish(TopicTransition, t)
}

// OnTransition runs handler on the publisher's goroutine; the returned func unsubscribes
func (b *Bus) OnTransition(handler func(domain.Transition)) (func(), error) {
	if err := b.bus.Subscribe(TopicTransition, handler); err != nil {
		return nil, errors.Wrap(err, "subscribing to transitions")
	}
	return func() { _ = b.bus.Unsubscribe(TopicTransition, handler) }, nil
}

// OnTransitionAsync runs handler on a background goroutine, one transition at a time and in order
func (b *Bus) OnTransitionAsync(handler func(domain.Transition)) (func(), error) {
	if err := b.bus.SubscribeAsync(TopicTransition, handler, true); err != nil {
		return nil, errors.Wrap(err, "subscribing to transitions")
	}
	return func() { _ = b.bus.Unsubscribe(TopicTransition, handler) }, nil
}

// WaitAsync blocks until async handlers have drained
func (b *Bus) WaitAsync() {
	b.bus.WaitAsync()
}
