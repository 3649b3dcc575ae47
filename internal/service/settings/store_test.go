package settings

import (
	"testing"
	"time"

	"github.com/safarly/backend/internal/config"
)

func newTestStore() *Store {
	cfg := config.AgentConfig{Enabled: true, Language: "ar", Timing: config.DefaultAgentTiming()}
	return NewStore(cfg, "seed-credential")
}

func TestStoreGetReturnsSeed(t *testing.T) {
	store := newTestStore()

	got := store.Get()
	if !got.Enabled {
		t.Fatal("expected agent enabled by default")
	}
	if got.Credential != "seed-credential" {
		t.Fatalf("unexpected credential: %q", got.Credential)
	}
	if got.Timing.IdleTimeout != 120*time.Second {
		t.Fatalf("unexpected idle timeout: %s", got.Timing.IdleTimeout)
	}
}

func TestStoreUpdateNotifiesSubscribers(t *testing.T) {
	store := newTestStore()
	ch, cancel := store.Subscribe()
	defer cancel()

	next := store.Get()
	next.Enabled = false
	next.Credential = "rotated"
	store.Update(next)

	select {
	case got := <-ch:
		if got.Enabled {
			t.Fatal("expected disabled settings in notification")
		}
		if got.Credential != "rotated" {
			t.Fatalf("unexpected credential: %q", got.Credential)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber never notified")
	}

	if store.Get().Credential != "rotated" {
		t.Fatal("Get did not observe update")
	}
}

func TestStoreLastWriteWins(t *testing.T) {
	store := newTestStore()
	ch, cancel := store.Subscribe()
	defer cancel()

	// More updates than the subscriber buffer holds; intermediate values may
	// be dropped but the final state must be observable.
	for i := 0; i < 10; i++ {
		next := store.Get()
		next.Language = "en"
		store.Update(next)
	}

	if got := store.Get().Language; got != "en" {
		t.Fatalf("unexpected language: %q", got)
	}

	// Drain whatever was buffered; every delivered value is a real past state.
	for {
		select {
		case got := <-ch:
			if got.Language != "en" {
				t.Fatalf("unexpected notified language: %q", got.Language)
			}
		default:
			return
		}
	}
}

func TestStoreCancelStopsNotifications(t *testing.T) {
	store := newTestStore()
	ch, cancel := store.Subscribe()
	cancel()
	cancel() // idempotent

	store.Update(store.Get())

	if _, open := <-ch; open {
		t.Fatal("expected channel closed after cancel")
	}
}
