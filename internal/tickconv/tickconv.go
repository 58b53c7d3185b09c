// Package tickconv converts decimal prices to the core's integer tick
// representation and back. This conversion is the caller's responsibility;
// the core itself stays oblivious to the tick scale.
package tickconv

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ToTicks converts price to an integer tick count at the given tick size
// (e.g. 0.01 for a market quoted to the cent). It fails if price does not
// land on a tick boundary.
func ToTicks(price, tickSize decimal.Decimal) (int64, error) {
	if !tickSize.IsPositive() {
		return 0, fmt.Errorf("tickconv: tick size must be positive, got %s", tickSize)
	}
	ticks := price.Div(tickSize)
	rounded := ticks.Round(0)
	if !ticks.Equal(rounded) {
		return 0, fmt.Errorf("tickconv: price %s is not aligned to tick size %s", price, tickSize)
	}
	return rounded.IntPart(), nil
}

// FromTicks converts an integer tick count back to a decimal price.
func FromTicks(ticks int64, tickSize decimal.Decimal) decimal.Decimal {
	return tickSize.Mul(decimal.NewFromInt(ticks))
}
