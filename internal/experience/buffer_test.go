package experience

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTransition(turn int) Transition {
	s := core.State{Rows: [core.NumPlayers][]int{{4, 4}, {4, 4}}, Player: turn % 2}
	return NewTransition("test-game", turn, turn%2, s, core.Action{Side: turn % 2, Hole: 0}, 0, s, false)
}

func turnsOf(ts []Transition) []int {
	out := make([]int, len(ts))
	for i, t := range ts {
		out[i] = t.Turn
	}
	return out
}

// contents returns the buffered transitions, oldest first.
func contents(b *Buffer) []Transition {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Transition, b.size)
	for i := range out {
		out[i] = b.buffer[(b.tail+i)%b.capacity]
	}
	return out
}

func TestBuffer_Creation(t *testing.T) {
	buffer := NewBuffer(100, zerolog.Nop())

	assert.Equal(t, 100, buffer.Capacity())
	assert.Equal(t, 0, buffer.Size())
	assert.False(t, buffer.IsFull())

	assert.Equal(t, DefaultBufferCapacity, NewBuffer(0, zerolog.Nop()).Capacity())
}

func TestBuffer_Add(t *testing.T) {
	buffer := NewBuffer(10, zerolog.Nop())
	for i := 0; i < 5; i++ {
		require.NoError(t, buffer.Add(createTestTransition(i)))
	}
	assert.Equal(t, 5, buffer.Size())
	assert.False(t, buffer.IsFull())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, turnsOf(contents(buffer)))
}

func TestBuffer_OverwritesOldest(t *testing.T) {
	buffer := NewBuffer(3, zerolog.Nop())
	for i := 0; i < 5; i++ {
		require.NoError(t, buffer.Add(createTestTransition(i)))
	}

	assert.True(t, buffer.IsFull())
	assert.Equal(t, []int{2, 3, 4}, turnsOf(contents(buffer)))

	stats := buffer.Stats()
	assert.Equal(t, int64(5), stats.TotalAdded)
	assert.Equal(t, int64(2), stats.TotalDropped)
	assert.Equal(t, 100.0, stats.UtilizationPct)
}

func TestBuffer_AddBatch(t *testing.T) {
	buffer := NewBuffer(4, zerolog.Nop())
	batch := []Transition{createTestTransition(0), createTestTransition(1), createTestTransition(2)}

	require.NoError(t, buffer.AddBatch(batch))
	require.NoError(t, buffer.AddBatch(batch))

	assert.Equal(t, 4, buffer.Size())
	assert.Equal(t, []int{2, 0, 1, 2}, turnsOf(contents(buffer)))
}

func TestBuffer_Sample(t *testing.T) {
	buffer := NewBuffer(8, zerolog.Nop())
	rng := rand.New(rand.NewSource(3))

	assert.Empty(t, buffer.Sample(5, rng))

	for i := 0; i < 12; i++ {
		require.NoError(t, buffer.Add(createTestTransition(i)))
	}

	sample := buffer.Sample(400, rng)
	require.Len(t, sample, 400)
	seen := map[int]bool{}
	for _, tr := range sample {
		assert.GreaterOrEqual(t, tr.Turn, 4, "overwritten transitions must not be sampled")
		seen[tr.Turn] = true
	}
	assert.Len(t, seen, 8)
	assert.Equal(t, 8, buffer.Size(), "sampling does not consume")
	assert.Equal(t, int64(400), buffer.Stats().TotalSampled)
}

func TestBuffer_SampleIsDeterministicPerSeed(t *testing.T) {
	buffer := NewBuffer(16, zerolog.Nop())
	for i := 0; i < 16; i++ {
		require.NoError(t, buffer.Add(createTestTransition(i)))
	}
	a := turnsOf(buffer.Sample(10, rand.New(rand.NewSource(9))))
	b := turnsOf(buffer.Sample(10, rand.New(rand.NewSource(9))))
	assert.Equal(t, a, b)
}

func TestBuffer_Close(t *testing.T) {
	buffer := NewBuffer(4, zerolog.Nop())
	require.NoError(t, buffer.Add(createTestTransition(0)))

	require.NoError(t, buffer.Close())
	require.NoError(t, buffer.Close())
	assert.ErrorIs(t, buffer.Add(createTestTransition(1)), ErrBufferClosed)
	assert.ErrorIs(t, buffer.AddBatch([]Transition{createTestTransition(2)}), ErrBufferClosed)

	// Reads keep working after Close.
	assert.Equal(t, 1, buffer.Size())
	assert.Len(t, buffer.Sample(3, rand.New(rand.NewSource(1))), 3)
}

func TestBuffer_ConcurrentAdd(t *testing.T) {
	buffer := NewBuffer(1000, zerolog.Nop())

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = buffer.Add(createTestTransition(w*100 + i))
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 800, buffer.Size())
	assert.Equal(t, int64(800), buffer.Stats().TotalAdded)
}
