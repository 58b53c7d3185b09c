package stream

import (
	"strings"
	"testing"

	"order-matching-engine/internal/dispatch"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProcessor_Run_DialectA_ReplaceThenZeroDeletes drives a dialect A
// price-level replacement sequence end-to-end through the CSV host adapter.
func TestProcessor_Run_DialectA_ReplaceThenZeroDeletes(t *testing.T) {
	p, err := New(Options{Capacity: 2, Dialect: dispatch.DialectA}, zerolog.Nop(), nil)
	require.NoError(t, err)

	input := "side,price,qty\n" +
		"Bid,10,100\n" +
		"Bid,10,200\n" +
		"Bid,11,50\n" +
		"Bid,11,0\n"

	var out strings.Builder
	require.NoError(t, p.Run(strings.NewReader(input), &out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 5) // header + 4 rows

	assert.Equal(t, "10,,100,,,,,", lines[1])
	assert.Equal(t, "10,,200,,,,,", lines[2])
	assert.Equal(t, "11,10,50,200,,,,", lines[3])
	assert.Equal(t, "10,,200,,,,,", lines[4])
}

func TestProcessor_Run_DialectB_WithFailingRow(t *testing.T) {
	p, err := New(Options{Capacity: 2, Dialect: dispatch.DialectB}, zerolog.Nop(), nil)
	require.NoError(t, err)

	// Row 2 underflows; row 3 should still reflect the recovered book state.
	input := "side,price,delta\n" +
		"Bid,10,5\n" +
		"Bid,10,-7\n" +
		"Bid,10,1\n"

	var out strings.Builder
	require.NoError(t, p.Run(strings.NewReader(input), &out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "10,,5,,,,,", lines[1])
	assert.Equal(t, "10,,5,,,,,", lines[2], "failed row must leave the book at its pre-row state")
	assert.Equal(t, "10,,6,,,,,", lines[3])
}

func TestProcessor_Run_DialectC_FullModify(t *testing.T) {
	p, err := New(Options{Capacity: 2, Dialect: dispatch.DialectC}, zerolog.Nop(), nil)
	require.NoError(t, err)

	input := "side,price,qty,prev_price,prev_qty\n" +
		"Bid,100,10,,\n" +
		"Bid,105,20,100,10\n"

	var out strings.Builder
	require.NoError(t, p.Run(strings.NewReader(input), &out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "100,,10,,,,,", lines[1])
	assert.Equal(t, "105,,20,,,,,", lines[2])
}

func TestProcessor_Run_NZero_EmptySnapshots(t *testing.T) {
	p, err := New(Options{Capacity: 0, Dialect: dispatch.DialectA}, zerolog.Nop(), nil)
	require.NoError(t, err)

	input := "side,price,qty\nBid,10,100\n"
	var out strings.Builder
	require.NoError(t, p.Run(strings.NewReader(input), &out))

	// Both lines are empty, so only the final newline is trimmed.
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "", lines[0])
	assert.Equal(t, "", lines[1])
}
