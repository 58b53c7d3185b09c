// Package snapshot packs a top-N book view into the fixed-shape output row
// the host consumes: four arrays of length N per side, with a sentinel for
// slots beyond the actual book depth.
package snapshot

import "order-matching-engine/internal/book"

// Row is one output record: four arrays of length N, best-first. A nil
// entry in *Price[k] and *Qty[k] always co-occur; a position is either
// fully populated or fully empty.
type Row struct {
	BidPrice []*int64
	BidQty   []*int64
	AskPrice []*int64
	AskQty   []*int64
}

// Encode packs bids and asks (already best-first, length <= n) into a Row
// with exactly n slots per field on each side. It never truncates below n:
// positions beyond the supplied levels are left nil.
func Encode(n int, bids, asks []book.PriceLevel) Row {
	row := Row{
		BidPrice: make([]*int64, n),
		BidQty:   make([]*int64, n),
		AskPrice: make([]*int64, n),
		AskQty:   make([]*int64, n),
	}
	fill(row.BidPrice, row.BidQty, bids)
	fill(row.AskPrice, row.AskQty, asks)
	return row
}

func fill(prices, qtys []*int64, levels []book.PriceLevel) {
	for i, lvl := range levels {
		if i >= len(prices) {
			return
		}
		price, qty := lvl.Price, lvl.Qty
		prices[i] = &price
		qtys[i] = &qty
	}
}
