package pubsub

import (
	"sync"

	"f1telemetrycompare/pkg/model"
)

const (
	PubSubLapRecordPrefix  = "lapRecord-"
	PubSubComparisonTopic  = "comparison"
	PubSubSessionInfoTopic = "sessionInfo"
)

// Shared topics wired between the provider manager, the dashboard and the
// notification manager.
var (
	LapRecordPubSub   = NewPubSub[model.LapRecord]()
	ComparisonPubSub  = NewPubSub[model.ComparisonReady]()
	SessionInfoPubSub = NewPubSub[model.SessionInfo]()
)

type PubSub[T any] struct {
	mu   sync.Mutex
	subs map[string][]chan T
}

func NewPubSub[T any]() *PubSub[T] {
	return &PubSub[T]{
		subs: make(map[string][]chan T),
	}
}

func (ps *PubSub[T]) Subscribe(topic string) <-chan T {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ch := make(chan T, 1)
	ps.subs[topic] = append(ps.subs[topic], ch)
	return ch
}

// Publish delivers data to every subscriber of the topic. Subscribers have a
// one-slot buffer; a subscriber that stopped draining blocks the publisher.
func (ps *PubSub[T]) Publish(topic string, data T) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, ch := range ps.subs[topic] {
		ch <- data
	}
}
