package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var executions atomic.Int32
	var followers atomic.Int32

	const callers = 16
	gate := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-gate
			val, err, shared := g.Do("scoreboard:2026-03-01", func() (any, error) {
				executions.Add(1)
				time.Sleep(15 * time.Millisecond)
				return 42, nil
			})
			if err != nil {
				t.Errorf("Do returned error: %v", err)
				return
			}
			if got, _ := val.(int); got != 42 {
				t.Errorf("Do returned %v, want 42", val)
			}
			if shared {
				followers.Add(1)
			}
		}()
	}

	close(gate)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("fn executed %d times, want 1", got)
	}
	if got := followers.Load(); got != callers-1 {
		t.Fatalf("%d callers reported shared result, want %d", got, callers-1)
	}
}

func TestSingleFlight_ErrorSharedThenRetryable(t *testing.T) {
	var g SingleFlight
	boom := errors.New("feed unavailable")

	_, err, _ := g.Do("k", func() (any, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("first call error = %v, want %v", err, boom)
	}

	// The key is released once the leader returns, so a later call runs
	// fresh instead of replaying the cached error.
	val, err, shared := g.Do("k", func() (any, error) { return "recovered", nil })
	if err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if shared {
		t.Fatal("second call should not share the first result")
	}
	if val != "recovered" {
		t.Fatalf("second call value = %v, want recovered", val)
	}
}
