package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.Publish(context.Background(), Event{Type: EventPageSaved, UserID: 1, Page: 3}))

	done, err := n.StartSubscriber(context.Background(), func(string, Event) {
		t.Fatal("no events expected without redis")
	})
	require.NoError(t, err)
	<-done
}

func TestNotifier_PublishAndSubscribe(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())

	type received struct {
		channel string
		ev      Event
	}
	events := make(chan received, 4)
	done, err := n.StartSubscriber(ctx, func(channel string, ev Event) {
		events <- received{channel, ev}
	})
	require.NoError(t, err)

	require.NoError(t, rdb.Publish(context.Background(), "applications:9", "not json").Err())
	require.NoError(t, n.Publish(context.Background(), Event{Type: EventPageSaved, UserID: 9, Page: 4}))
	require.NoError(t, n.Publish(context.Background(), Event{Type: EventSubmitted, UserID: 9}))

	var got []received
	for len(got) < 2 {
		select {
		case r := <-events:
			got = append(got, r)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for events, got %d", len(got))
		}
	}

	assert.Equal(t, "applications:9", got[0].channel)
	assert.Equal(t, EventPageSaved, got[0].ev.Type)
	assert.Equal(t, 4, got[0].ev.Page)
	assert.False(t, got[0].ev.At.IsZero())
	assert.Equal(t, EventSubmitted, got[1].ev.Type)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not stop after cancel")
	}
}

func TestNotifier_SubscriberSurvivesPanickingCallback(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan int, 2)
	count := 0
	done, err := n.StartSubscriber(ctx, func(string, Event) {
		count++
		calls <- count
		if count == 1 {
			panic("boom")
		}
	})
	require.NoError(t, err)

	require.NoError(t, n.Publish(context.Background(), Event{Type: EventPageSaved, UserID: 1, Page: 1}))
	require.NoError(t, n.Publish(context.Background(), Event{Type: EventPageSaved, UserID: 1, Page: 2}))

	for want := 1; want <= 2; want++ {
		select {
		case got := <-calls:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("callback %d not invoked", want)
		}
	}

	cancel()
	<-done
}

func TestLogEvents(t *testing.T) {
	assert.NotPanics(t, func() {
		LogEvents(context.Background())("applications:1", Event{Type: EventSubmitted, UserID: 1})
	})
}
