// Package dispatch translates update rows in one of three dialects into the
// order book's primitive mutations, and exposes the top-N snapshot (TopN)
// that a host reads after each row. Dialect-awareness lives only here: the book package knows
// nothing of dialects.
package dispatch

import "order-matching-engine/internal/book"

// Dialect selects which of the three row encodings a stream carries. It is
// fixed per stream; the dispatcher never mixes dialects within one run.
type Dialect int

const (
	// DialectA is price-level replacement: (side, price, qty).
	DialectA Dialect = iota
	// DialectB is quantity delta: (side, price, delta).
	DialectB
	// DialectC is delta with modify: (side, price, qty, prev_price?, prev_qty?).
	DialectC
)

func (d Dialect) String() string {
	switch d {
	case DialectA:
		return "A"
	case DialectB:
		return "B"
	case DialectC:
		return "C"
	default:
		return "unknown"
	}
}

// RowA is a Dialect A price-level replacement row.
type RowA struct {
	Side  book.Side
	Price int64
	Qty   int64
}

// RowB is a Dialect B quantity delta row.
type RowB struct {
	Side  book.Side
	Price int64
	Delta int64
}

// RowC is a Dialect C delta-with-modify row. PrevPrice and PrevQty are
// nullable: both present triggers a modify (or a quantity-only reduction to
// add_qty when prices match), both absent reduces to Dialect B, and mixed
// presence is malformed.
type RowC struct {
	Side      book.Side
	Price     int64
	Qty       int64
	PrevPrice *int64
	PrevQty   *int64
}

// UpdateDispatcher drives one OrderBook across a row stream for a fixed
// dialect. It is stateless per row; all state lives in the OrderBook it
// wraps.
type UpdateDispatcher struct {
	book    *book.OrderBook
	dialect Dialect
}

// New constructs a dispatcher bound to ob for the given dialect.
func New(ob *book.OrderBook, dialect Dialect) *UpdateDispatcher {
	return &UpdateDispatcher{book: ob, dialect: dialect}
}

// Dialect returns the dispatcher's fixed dialect.
func (d *UpdateDispatcher) Dialect() Dialect { return d.dialect }

// Book returns the underlying OrderBook, mainly so a host can read depth or
// total-quantity diagnostics alongside the dispatched mutations.
func (d *UpdateDispatcher) Book() *book.OrderBook { return d.book }

// ProcessA reduces a Dialect A row to set_qty. Quantity 0 means the level no
// longer exists.
func (d *UpdateDispatcher) ProcessA(row RowA) error {
	return d.book.SetQty(row.Side, row.Price, row.Qty)
}

// ProcessB reduces a Dialect B row to add_qty. A delta of exactly zero is a
// no-op and must not mutate the book.
func (d *UpdateDispatcher) ProcessB(row RowB) error {
	if row.Delta == 0 {
		return nil
	}
	return d.book.AddQty(row.Side, row.Price, row.Delta)
}

// ProcessC reduces a Dialect C row per spec: a full modify when both
// prev_price/prev_qty are present and prev_price != price, a quantity-only
// add_qty when both are present and prev_price == price, a plain add_qty
// when both are absent, and ErrMalformedRow on mixed presence.
func (d *UpdateDispatcher) ProcessC(row RowC) error {
	switch {
	case row.PrevPrice != nil && row.PrevQty != nil:
		if *row.PrevPrice == row.Price {
			return d.book.AddQty(row.Side, row.Price, row.Qty-*row.PrevQty)
		}
		return d.book.Modify(row.Side, row.Price, row.Qty, *row.PrevPrice, *row.PrevQty)
	case row.PrevPrice == nil && row.PrevQty == nil:
		return d.book.AddQty(row.Side, row.Price, row.Qty)
	default:
		return book.ErrMalformedRow
	}
}

// TopN returns the book's current top-N snapshot, best-first on each side.
// The dispatcher never calls it itself and keeps no snapshot between rows;
// the Process methods do not capture one. A host that calls TopN after each
// Process call gets the snapshot for that row.
func (d *UpdateDispatcher) TopN() (bids, asks []book.PriceLevel) {
	return d.book.TopN()
}
