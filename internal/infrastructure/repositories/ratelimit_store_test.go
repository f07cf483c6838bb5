package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRateLimitStore(t *testing.T) (*miniredis.Miniredis, *RateLimitStoreImpl) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewRateLimitStore(client).(*RateLimitStoreImpl)
}

func TestRateLimitStoreImpl_FirstTouchInitializesWindow(t *testing.T) {
	_, store := setupRateLimitStore(t)

	result, err := store.Touch(context.Background(), "auth:ip:1.2.3.4", time.Minute)
	if err != nil {
		t.Fatalf("touch failed: %v", err)
	}
	if result.Count != 1 {
		t.Errorf("expected count 1, got %d", result.Count)
	}
	if result.Remaining <= 0 || result.Remaining > time.Minute {
		t.Errorf("remaining TTL out of range: %v", result.Remaining)
	}
}

func TestRateLimitStoreImpl_IncrementsKeepWindow(t *testing.T) {
	mr, store := setupRateLimitStore(t)

	for i := 1; i <= 3; i++ {
		result, err := store.Touch(context.Background(), "api:user:9", time.Minute)
		if err != nil {
			t.Fatalf("touch %d failed: %v", i, err)
		}
		if result.Count != int64(i) {
			t.Errorf("expected count %d, got %d", i, result.Count)
		}
	}

	// Later touches must reuse the remaining TTL, not restart the window
	mr.FastForward(30 * time.Second)
	result, err := store.Touch(context.Background(), "api:user:9", time.Minute)
	if err != nil {
		t.Fatalf("touch failed: %v", err)
	}
	if result.Remaining > 30*time.Second {
		t.Errorf("window was restarted: remaining %v", result.Remaining)
	}
}

func TestRateLimitStoreImpl_WindowExpiryResetsCount(t *testing.T) {
	mr, store := setupRateLimitStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.Touch(context.Background(), "auth:ip:1.2.3.4", time.Minute); err != nil {
			t.Fatalf("touch failed: %v", err)
		}
	}

	mr.FastForward(61 * time.Second)

	result, err := store.Touch(context.Background(), "auth:ip:1.2.3.4", time.Minute)
	if err != nil {
		t.Fatalf("touch failed: %v", err)
	}
	if result.Count != 1 {
		t.Errorf("expected a fresh window with count 1, got %d", result.Count)
	}
}

func TestRateLimitStoreImpl_KeysAreIndependent(t *testing.T) {
	_, store := setupRateLimitStore(t)

	for i := 0; i < 4; i++ {
		if _, err := store.Touch(context.Background(), "auth:ip:1.1.1.1", time.Minute); err != nil {
			t.Fatalf("touch failed: %v", err)
		}
	}

	result, err := store.Touch(context.Background(), "auth:ip:2.2.2.2", time.Minute)
	if err != nil {
		t.Fatalf("touch failed: %v", err)
	}
	if result.Count != 1 {
		t.Errorf("counters leaked across keys: got %d", result.Count)
	}
}

func TestRateLimitStoreImpl_ConcurrentTouchesNeverUndercount(t *testing.T) {
	_, store := setupRateLimitStore(t)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Touch(context.Background(), "api:user:1", time.Minute); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("touch failed: %v", err)
	}

	final, err := store.Touch(context.Background(), "api:user:1", time.Minute)
	if err != nil {
		t.Fatalf("final touch failed: %v", err)
	}
	if final.Count != workers+1 {
		t.Errorf("expected %d, got %d", workers+1, final.Count)
	}
}

func TestRateLimitStoreImpl_ManyDistinctKeys(t *testing.T) {
	_, store := setupRateLimitStore(t)

	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("api:user:%d", i)
		result, err := store.Touch(context.Background(), key, time.Minute)
		if err != nil {
			t.Fatalf("touch failed: %v", err)
		}
		if result.Count != 1 {
			t.Errorf("key %s: expected 1, got %d", key, result.Count)
		}
	}
}
