// Package inproc is an in-process, map-backed transport with synchronous
// delivery:
// a concrete Publisher/SubscriptionFactory pair for tests, demos, and
// single-process deployments where goal/cancel/status/feedback/result
// never leave the process.
package inproc

import (
	"sync"

	"github.com/google/uuid"

	"github.com/marmos91/actionlib/pkg/actionlib"
)

// Bus is a set of named topics. Publishing to a topic fans the message
// out to every subscription currently registered on it; a topic with no
// subscribers silently discards what is published to it.
type Bus struct {
	mu     sync.RWMutex
	topics map[string]*topic
}

// NewBus creates an empty, ready to use Bus.
func NewBus() *Bus {
	return &Bus{topics: make(map[string]*topic)}
}

type topic struct {
	mu   sync.Mutex
	subs map[string]*subscription
}

// Advertise implements actionlib.PublisherFactory. queueSize is accepted
// for interface compatibility but unused: delivery is synchronous and
// unbounded, matching a single-process demo's needs.
func (b *Bus) Advertise(name string, _ int) (actionlib.Publisher, error) {
	return &busPublisher{bus: b, topic: name}, nil
}

// Subscribe implements actionlib.SubscriptionFactory. queueSize is
// accepted for interface compatibility but unused.
func (b *Bus) Subscribe(name string, _ int, callback actionlib.SubscriptionCallback) (actionlib.Subscription, error) {
	b.mu.Lock()
	t, ok := b.topics[name]
	if !ok {
		t = &topic{subs: make(map[string]*subscription)}
		b.topics[name] = t
	}
	b.mu.Unlock()

	sub := &subscription{id: uuid.NewString(), topic: t, callback: callback}
	t.mu.Lock()
	t.subs[sub.id] = sub
	t.mu.Unlock()
	return sub, nil
}

func (b *Bus) publish(name string, msg any) error {
	b.mu.RLock()
	t, ok := b.topics[name]
	b.mu.RUnlock()
	if !ok {
		return nil
	}

	t.mu.Lock()
	callbacks := make([]actionlib.SubscriptionCallback, 0, len(t.subs))
	for _, sub := range t.subs {
		callbacks = append(callbacks, sub.callback)
	}
	t.mu.Unlock()

	for _, cb := range callbacks {
		cb(msg)
	}
	return nil
}

// busPublisher is the Publisher handed back by Bus.Advertise.
type busPublisher struct {
	bus   *Bus
	topic string
}

// Publish fans msg out to every subscriber currently registered on the
// publisher's topic.
func (p *busPublisher) Publish(msg any) error {
	return p.bus.publish(p.topic, msg)
}

// subscription is the Subscription handed back by Bus.Subscribe.
type subscription struct {
	id       string
	topic    *topic
	callback actionlib.SubscriptionCallback
}

// Close unregisters the subscription; further publications to its topic
// no longer reach it.
func (s *subscription) Close() error {
	s.topic.mu.Lock()
	delete(s.topic.subs, s.id)
	s.topic.mu.Unlock()
	return nil
}
