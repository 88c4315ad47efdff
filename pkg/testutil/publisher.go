package testutil

import (
	"context"
	"sync"

	"github.com/chain-labs/simplr-events-server-v2/pkg/pubsub"
)

type MockPublisher struct {
	mutex  sync.Mutex
	Packs  map[string][]*pubsub.Pack
	Closed bool
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Packs == nil {
		m.Packs = make(map[string][]*pubsub.Pack)
	}
	m.Packs[topic] = append(m.Packs[topic], pack)

	return nil
}

func (m *MockPublisher) Stop(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.Closed = true
	return nil
}
