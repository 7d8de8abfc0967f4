package main

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/5w1tchy/smart-library-api/internal/events"
	"github.com/5w1tchy/smart-library-api/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	mu  sync.Mutex
	got []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, batch []events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, batch...)
	return nil
}

func (p *recordingPublisher) Ping(context.Context) error { return nil }

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.got)
}

func TestShutdownDrainsQueueAfterServeFailure(t *testing.T) {
	pub := &recordingPublisher{}
	queue := events.NewQueue(pub, events.QueueOptions{Buffer: 16})
	for i := int64(1); i <= 3; i++ {
		assert.True(t, queue.Enqueue(events.New(events.BookCreated, models.Book{ID: i})))
	}

	server := &http.Server{Addr: "256.0.0.1:-1"}
	assert.Error(t, server.ListenAndServe())

	shutdown(time.Second, server, queue, zap.NewNop())
	assert.Equal(t, 3, pub.count())
	assert.False(t, queue.Enqueue(events.New(events.BookDeleted, models.Book{ID: 4})))
}

func TestShutdownWithoutEvents(t *testing.T) {
	server := &http.Server{Addr: "127.0.0.1:0"}
	assert.NotPanics(t, func() { shutdown(time.Second, server, nil, zap.NewNop()) })
}
