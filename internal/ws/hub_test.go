package ws

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestPublishQueuesEvent(t *testing.T) {
	hub := NewHub(quietLogger(), 2)

	ok := hub.Publish(Event{Type: EventTransactionRecorded, Payload: map[string]string{"id": "abc"}})
	require.True(t, ok)

	msg := <-hub.Broadcast
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg, &decoded))
	assert.Equal(t, EventTransactionRecorded, decoded["type"])
	assert.Equal(t, "abc", decoded["payload"].(map[string]interface{})["id"])
	assert.NotEmpty(t, decoded["sent_at"])
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(quietLogger(), 1)

	assert.True(t, hub.Publish(Event{Type: EventDailyStats}))
	assert.False(t, hub.Publish(Event{Type: EventDailyStats}))
	assert.Len(t, hub.Broadcast, 1)
}

func TestPublishRejectsUnmarshalablePayload(t *testing.T) {
	hub := NewHub(quietLogger(), 1)

	assert.False(t, hub.Publish(Event{Type: "bad", Payload: make(chan int)}))
	assert.Len(t, hub.Broadcast, 0)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	hub := NewHub(quietLogger(), 1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	hub.Publish(Event{Type: EventDailyStats})
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	assert.Equal(t, 0, hub.ClientCount())
}
