package tickconv

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToTicks(t *testing.T) {
	tickSize := decimal.NewFromFloat(0.01)

	ticks, err := ToTicks(decimal.NewFromFloat(123.45), tickSize)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), ticks)
}

func TestToTicks_Misaligned(t *testing.T) {
	tickSize := decimal.NewFromFloat(0.01)
	_, err := ToTicks(decimal.NewFromFloat(123.456), tickSize)
	assert.Error(t, err)
}

func TestToTicks_NonPositiveTickSize(t *testing.T) {
	_, err := ToTicks(decimal.NewFromInt(100), decimal.Zero)
	assert.Error(t, err)

	_, err = ToTicks(decimal.NewFromInt(100), decimal.NewFromInt(-1))
	assert.Error(t, err)
}

func TestFromTicks_RoundTrip(t *testing.T) {
	tickSize := decimal.NewFromFloat(0.01)
	price := decimal.NewFromFloat(123.45)

	ticks, err := ToTicks(price, tickSize)
	require.NoError(t, err)
	assert.True(t, price.Equal(FromTicks(ticks, tickSize)))
}
