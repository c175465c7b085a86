package deletion

import (
	"sync"
	"testing"
)

func TestAccountLocksMutualExclusion(t *testing.T) {
	locks := newAccountLocks()

	const goroutines = 16
	var inCritical, maxInCritical int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("acc-1")
			defer unlock()

			mu.Lock()
			inCritical++
			if inCritical > maxInCritical {
				maxInCritical = inCritical
			}
			mu.Unlock()

			mu.Lock()
			inCritical--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxInCritical != 1 {
		t.Errorf("expected at most 1 holder at a time, observed %d", maxInCritical)
	}
}

func TestAccountLocksIndependentAccounts(t *testing.T) {
	locks := newAccountLocks()

	unlockA := locks.lock("acc-a")
	defer unlockA()

	// A different account must not be blocked by acc-a's holder.
	done := make(chan struct{})
	go func() {
		unlockB := locks.lock("acc-b")
		unlockB()
		close(done)
	}()
	<-done
}

func TestAccountLocksEntriesAreReleased(t *testing.T) {
	locks := newAccountLocks()

	unlock := locks.lock("acc-1")
	if locks.len() != 1 {
		t.Fatalf("expected 1 live entry, got %d", locks.len())
	}
	unlock()

	if locks.len() != 0 {
		t.Errorf("expected entry to be removed after release, got %d", locks.len())
	}
}
