package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailbox_PreservesOrder(t *testing.T) {
	m := NewMailbox[int](8)
	for i := 0; i < 5; i++ {
		require.True(t, m.Send(i))
	}

	for i := 0; i < 5; i++ {
		v, err := m.TryRecv()
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}

	_, err := m.TryRecv()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestMailbox_DropsWhenFull(t *testing.T) {
	m := NewMailbox[string](1)
	assert.True(t, m.Send("first"))
	assert.False(t, m.Send("second"), "a full mailbox must not block the sender")

	v, err := m.TryRecv()
	require.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestMailbox_CloseDeliversQueuedThenDisconnects(t *testing.T) {
	m := NewMailbox[int](4)
	m.Send(1)
	m.Send(2)
	m.Close()
	m.Close()

	assert.False(t, m.Send(3), "send after close is dropped")

	v, err := m.TryRecv()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, err = m.TryRecv()
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = m.TryRecv()
	assert.ErrorIs(t, err, ErrDisconnected)
}

func TestMailbox_DrainTakesSnapshot(t *testing.T) {
	m := NewMailbox[int](16)
	assert.Nil(t, m.Drain())

	m.Send(1)
	m.Send(2)
	m.Send(3)
	assert.Equal(t, []int{1, 2, 3}, m.Drain())

	m.Send(4)
	assert.Equal(t, []int{4}, m.Drain())
}

func TestMailbox_ConcurrentProducers(t *testing.T) {
	const producers, perProducer = 4, 50
	m := NewMailbox[[2]int](producers * perProducer)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				m.Send([2]int{p, i})
			}
		}(p)
	}
	wg.Wait()

	last := map[int]int{}
	count := 0
	for _, v := range m.Drain() {
		prev, seen := last[v[0]]
		if seen {
			assert.Greater(t, v[1], prev, "per-producer order must be kept")
		}
		last[v[0]] = v[1]
		count++
	}
	assert.Equal(t, producers*perProducer, count)
}

func TestExitFlag_SetOnce(t *testing.T) {
	var f ExitFlag
	assert.False(t, f.IsSet())
	assert.True(t, f.Set())
	assert.False(t, f.Set())
	assert.True(t, f.IsSet())
}

func TestSlot(t *testing.T) {
	var s Slot[string]
	called := false
	assert.False(t, s.With(func(string) { called = true }))
	assert.False(t, called, "an empty slot must not call fn")

	s.Store("page-1")
	var got string
	assert.True(t, s.With(func(v string) { got = v }))
	assert.Equal(t, "page-1", got)

	assert.False(t, s.Clear(func(v string) bool { return v == "page-2" }))
	assert.True(t, s.Populated())
	assert.True(t, s.Clear(func(v string) bool { return v == "page-1" }))
	assert.False(t, s.Populated())
}

func TestConcurrencyGuard_RejectsSecondTask(t *testing.T) {
	g := NewConcurrencyGuard()
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- g.Execute(func() error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	assert.True(t, g.Busy())
	assert.ErrorIs(t, g.Execute(func() error { return nil }), ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, g.Busy())
}
