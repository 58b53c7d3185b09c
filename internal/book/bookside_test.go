package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookSide_AddQty_CreateAndFail(t *testing.T) {
	b := newBookSide(Bid)

	m, err := b.AddQty(100, 10)
	require.NoError(t, err)
	assert.Equal(t, mutCreated, m.kind)

	_, err = b.AddQty(101, 0)
	assert.ErrorIs(t, err, ErrZeroInsert)

	_, err = b.AddQty(102, -5)
	assert.ErrorIs(t, err, ErrDeleteMissingLevel)
}

func TestBookSide_AddQty_UnderflowLeavesBookUnchanged(t *testing.T) {
	b := newBookSide(Bid)
	_, err := b.AddQty(10, 5)
	require.NoError(t, err)

	_, err = b.AddQty(10, -7)
	assert.ErrorIs(t, err, ErrQuantityUnderflow)

	q, ok := b.QtyAt(10)
	assert.True(t, ok)
	assert.Equal(t, int64(5), q)
}

func TestBookSide_AddQty_DeletesAtZero(t *testing.T) {
	b := newBookSide(Ask)
	_, err := b.AddQty(50, 10)
	require.NoError(t, err)

	m, err := b.AddQty(50, -10)
	require.NoError(t, err)
	assert.Equal(t, mutDeleted, m.kind)

	_, ok := b.QtyAt(50)
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len())
}

func TestBookSide_SetQty(t *testing.T) {
	b := newBookSide(Bid)

	m, err := b.SetQty(10, 100)
	require.NoError(t, err)
	assert.Equal(t, mutCreated, m.kind)

	m, err = b.SetQty(10, 200)
	require.NoError(t, err)
	assert.Equal(t, mutUpdated, m.kind)

	m, err = b.SetQty(10, 0)
	require.NoError(t, err)
	assert.Equal(t, mutDeleted, m.kind)

	_, err = b.SetQty(11, -1)
	assert.ErrorIs(t, err, ErrQuantityUnderflow)

	// Setting an absent price to zero is a no-op, not an error.
	m, err = b.SetQty(999, 0)
	require.NoError(t, err)
	assert.Equal(t, mutNoop, m.kind)
}

func TestBookSide_SetQty_Idempotent(t *testing.T) {
	b1 := newBookSide(Bid)
	_, err := b1.SetQty(10, 50)
	require.NoError(t, err)
	_, err = b1.SetQty(10, 50)
	require.NoError(t, err)

	b2 := newBookSide(Bid)
	_, err = b2.SetQty(10, 50)
	require.NoError(t, err)

	assert.Equal(t, b1.TopN(5), b2.TopN(5))
}

func TestBookSide_AddQty_RoundTrip(t *testing.T) {
	b := newBookSide(Ask)
	_, err := b.AddQty(10, 7)
	require.NoError(t, err)

	_, err = b.AddQty(10, -7)
	require.NoError(t, err)

	_, ok := b.QtyAt(10)
	assert.False(t, ok, "level should be absent again after a round-trip delta")
	assert.Equal(t, 0, b.Len())
}

func TestBookSide_Delete(t *testing.T) {
	b := newBookSide(Bid)
	_, err := b.Delete(10)
	assert.ErrorIs(t, err, ErrDeleteMissingLevel)

	_, err = b.AddQty(10, 5)
	require.NoError(t, err)
	m, err := b.Delete(10)
	require.NoError(t, err)
	assert.Equal(t, mutDeleted, m.kind)
}

func TestBookSide_BestFirstOrdering(t *testing.T) {
	bid := newBookSide(Bid)
	for _, p := range []int64{10, 12, 11} {
		_, err := bid.AddQty(p, 1)
		require.NoError(t, err)
	}
	assert.Equal(t, []PriceLevel{{12, 1}, {11, 1}, {10, 1}}, bid.TopN(10))

	ask := newBookSide(Ask)
	for _, p := range []int64{10, 12, 11} {
		_, err := ask.AddQty(p, 1)
		require.NoError(t, err)
	}
	assert.Equal(t, []PriceLevel{{10, 1}, {11, 1}, {12, 1}}, ask.TopN(10))
}

func TestBookSide_NthBestFrom(t *testing.T) {
	b := newBookSide(Ask)
	for _, p := range []int64{10, 20, 30, 40} {
		_, err := b.AddQty(p, 1)
		require.NoError(t, err)
	}

	lvl, ok := b.NthBestFrom(2)
	require.True(t, ok)
	assert.Equal(t, PriceLevel{Price: 30, Qty: 1}, lvl)

	_, ok = b.NthBestFrom(10)
	assert.False(t, ok)
}

func TestBookSide_DialectB_ZeroSum(t *testing.T) {
	b := newBookSide(Bid)
	deltas := []int64{5, -3, 10, -12}
	for _, d := range deltas {
		_, err := b.AddQty(42, d)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, b.Len())
}
