package smchash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rand42 = []uint64{
	0x42fceab0062e67c9,
	0x82de60bf4e52e97e,
	0x7de093e851c55fe6,
	0x4f6b53d69ea8789f,
	0xa89197ddfde19f59,
}

func TestStep_FromZero(t *testing.T) {
	out, next := Step(0)
	assert.Equal(t, uint64(0x5b8df5b3529eb605), out)
	assert.Equal(t, DefaultSecret()[0], next)
}

func TestRand_Sequence(t *testing.T) {
	seed := uint64(42)
	for i, want := range rand42 {
		assert.Equal(t, want, Rand(&seed), "output %d", i)
	}
	assert.Equal(t, uint64(0x06198c6d53c3cda1), seed)
}

func TestRand_MatchesStep(t *testing.T) {
	state := uint64(42)
	seed := uint64(42)
	for i := 0; i < 100; i++ {
		out, next := Step(state)
		require.Equal(t, out, Rand(&seed))
		require.Equal(t, next, seed)
		state = next
	}
}

func TestRand_AdvancesState(t *testing.T) {
	seed := uint64(42)
	a, b, c := Rand(&seed), Rand(&seed), Rand(&seed)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, b, c)
	assert.NotEqual(t, a, c)
}

func TestRand_StateIsAdditive(t *testing.T) {
	seed := uint64(1000)
	for i := 0; i < 10; i++ {
		Rand(&seed)
	}
	assert.Equal(t, uint64(1000)+10*DefaultSecret()[0], seed)
}

func TestSource(t *testing.T) {
	src := NewSource(42)
	for i, want := range rand42[:3] {
		assert.Equal(t, want, src.Uint64(), "output %d", i)
	}

	// A new source from the saved state continues the sequence.
	cont := NewSource(src.State())
	assert.Equal(t, rand42[3], cont.Uint64())
	assert.Equal(t, rand42[3], src.Uint64())

	src.Seed(42)
	assert.Equal(t, rand42[0], src.Uint64())
}

func TestNewRand(t *testing.T) {
	r := NewRand(42)
	assert.Equal(t, rand42[0], r.Uint64())

	for i := 0; i < 1000; i++ {
		n := r.IntN(70)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 70)
	}
}

func BenchmarkRand(b *testing.B) {
	seed := uint64(42)
	var sink uint64
	for i := 0; i < b.N; i++ {
		sink ^= Rand(&seed)
	}
	_ = sink
}
