package locks

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTable_AcquireRelease(t *testing.T) {
	t.Parallel()

	table := NewTable()

	require.True(t, table.Acquire("lot:1", 10*time.Millisecond))

	// Same key is held, different key is free.
	require.False(t, table.Acquire("lot:1", 20*time.Millisecond))
	require.True(t, table.Acquire("lot:2", 10*time.Millisecond))

	table.Release("lot:1")
	require.True(t, table.Acquire("lot:1", 10*time.Millisecond))

	table.Release("lot:1")
	table.Release("lot:2")
}

func TestTable_BoundedWait(t *testing.T) {
	t.Parallel()

	table := NewTable()
	require.True(t, table.Acquire("lot:1", 10*time.Millisecond))

	start := time.Now()
	require.False(t, table.Acquire("lot:1", 50*time.Millisecond))
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	table.Release("lot:1")
}

func TestTable_WaiterEntersOnRelease(t *testing.T) {
	t.Parallel()

	table := NewTable()
	require.True(t, table.Acquire("lot:1", 10*time.Millisecond))

	entered := make(chan struct{})
	go func() {
		if table.Acquire("lot:1", time.Second) {
			close(entered)
		}
	}()

	time.Sleep(20 * time.Millisecond)
	table.Release("lot:1")

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("waiter never entered the section after release")
	}
	table.Release("lot:1")
}

func TestTable_MutualExclusion(t *testing.T) {
	t.Parallel()

	table := NewTable()

	var wg sync.WaitGroup
	var inSection, maxInSection int
	var mu sync.Mutex

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !table.Acquire("lot:1", 5*time.Second) {
				t.Error("could not enter section within budget")
				return
			}
			mu.Lock()
			inSection++
			if inSection > maxInSection {
				maxInSection = inSection
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inSection--
			mu.Unlock()
			table.Release("lot:1")
		}()
	}

	wg.Wait()
	require.Equal(t, 1, maxInSection)
}

func TestKeyNamespaces(t *testing.T) {
	t.Parallel()

	// A lot and an auction sharing an id must not collide.
	require.NotEqual(t, LotKey("x"), AuctionKey("x"))
}
