package connection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(c *Client) [][]byte {
	var frames [][]byte
	for {
		select {
		case frame := <-c.send:
			frames = append(frames, frame)
		default:
			return frames
		}
	}
}

func TestClientSendQueuesFrames(t *testing.T) {
	client := NewClient(nil)

	require.True(t, client.Send([]byte("one")))
	require.True(t, client.Send([]byte("two")))

	frames := drain(client)
	require.Len(t, frames, 2)
	assert.Equal(t, "one", string(frames[0]))
	assert.Equal(t, "two", string(frames[1]))
}

func TestClientSendDoesNotBlockOnAFullQueue(t *testing.T) {
	client := NewClient(nil)

	for i := 0; i < sendBufferSize; i++ {
		require.True(t, client.Send([]byte("frame")))
	}

	assert.False(t, client.Send([]byte("overflow")))
}

func TestClientSendAfterCloseReportsFailure(t *testing.T) {
	client := NewClient(nil)
	client.Close()
	client.Close()

	assert.False(t, client.Send([]byte("late")))
}

func TestRegistryTracksClients(t *testing.T) {
	registry := NewRegistry()
	a, b := NewClient(nil), NewClient(nil)

	registry.Register(a)
	registry.Register(b)
	assert.Equal(t, 2, registry.Count())

	registry.Unregister(a)
	assert.Equal(t, 1, registry.Count())
}

func TestBroadcastDeliversToListenersInSubscriptionOrder(t *testing.T) {
	broadcast := NewBroadcast()
	a, b := NewClient(nil), NewClient(nil)

	broadcast.AddListener(a)
	broadcast.AddListener(b)
	broadcast.AddListener(a)
	require.Equal(t, 2, broadcast.ListenerCount())

	broadcast.Send([]byte("first"))
	broadcast.Send([]byte("second"))

	for _, client := range []*Client{a, b} {
		frames := drain(client)
		require.Len(t, frames, 2)
		assert.Equal(t, "first", string(frames[0]))
		assert.Equal(t, "second", string(frames[1]))
	}
}

func TestBroadcastDropsFailingListenersAndKeepsDelivering(t *testing.T) {
	broadcast := NewBroadcast()
	dead, alive := NewClient(nil), NewClient(nil)
	dead.Close()

	broadcast.AddListener(dead)
	broadcast.AddListener(alive)

	broadcast.Send([]byte("frame"))

	assert.Equal(t, 1, broadcast.ListenerCount())
	frames := drain(alive)
	require.Len(t, frames, 1)
	assert.Equal(t, "frame", string(frames[0]))
}

func TestBroadcastRemoveListener(t *testing.T) {
	broadcast := NewBroadcast()
	a, b := NewClient(nil), NewClient(nil)
	broadcast.AddListener(a)
	broadcast.AddListener(b)

	broadcast.RemoveListener(a)

	broadcast.Send([]byte("frame"))
	assert.Empty(t, drain(a))
	assert.Len(t, drain(b), 1)
}
