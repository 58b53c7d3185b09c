package snapshot

import (
	"testing"

	"order-matching-engine/internal/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i64(v int64) *int64 { return &v }

func TestEncode_FullDepth(t *testing.T) {
	row := Encode(2,
		[]book.PriceLevel{{11, 10}, {10, 200}},
		[]book.PriceLevel{{12, 5}, {13, 8}},
	)

	require.Len(t, row.BidPrice, 2)
	assert.Equal(t, i64(11), row.BidPrice[0])
	assert.Equal(t, i64(10), row.BidPrice[1])
	assert.Equal(t, i64(10), row.BidQty[0])
	assert.Equal(t, i64(200), row.BidQty[1])
	assert.Equal(t, i64(12), row.AskPrice[0])
	assert.Equal(t, i64(5), row.AskQty[0])
}

func TestEncode_ShallowerThanN_SentinelFilled(t *testing.T) {
	row := Encode(3, []book.PriceLevel{{10, 100}}, nil)

	require.Len(t, row.BidPrice, 3)
	assert.Equal(t, i64(10), row.BidPrice[0])
	assert.Nil(t, row.BidPrice[1])
	assert.Nil(t, row.BidQty[1])
	assert.Nil(t, row.BidPrice[2])

	for i := range row.AskPrice {
		assert.Nil(t, row.AskPrice[i])
		assert.Nil(t, row.AskQty[i])
	}
}

func TestEncode_NZero_AllEmpty(t *testing.T) {
	row := Encode(0, []book.PriceLevel{{10, 100}}, []book.PriceLevel{{11, 5}})
	assert.Empty(t, row.BidPrice)
	assert.Empty(t, row.BidQty)
	assert.Empty(t, row.AskPrice)
	assert.Empty(t, row.AskQty)
}

func TestEncode_SentinelsCoOccur(t *testing.T) {
	row := Encode(4, []book.PriceLevel{{10, 100}, {9, 50}}, nil)
	for i := range row.BidPrice {
		if row.BidPrice[i] == nil {
			assert.Nil(t, row.BidQty[i], "position %d: price/qty sentinel must co-occur", i)
		} else {
			assert.NotNil(t, row.BidQty[i], "position %d: price/qty sentinel must co-occur", i)
		}
	}
}
