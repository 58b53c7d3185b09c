package book

// OrderBook pairs a bid TrackedBookSide and an ask TrackedBookSide, both of
// capacity N. It exposes dialect-agnostic mutation primitives and a
// combined top-N snapshot. No cross-side invariants are enforced: the core
// is a pure aggregator and does not check for a crossed book.
type OrderBook struct {
	bid *TrackedBookSide
	ask *TrackedBookSide
}

// NewOrderBook constructs an OrderBook with top-N capacity on each side. A
// negative capacity is fatal to construction.
func NewOrderBook(capacity int) (*OrderBook, error) {
	if capacity < 0 {
		return nil, ErrCapacityInvalid
	}
	return &OrderBook{
		bid: newTrackedBookSide(Bid, capacity),
		ask: newTrackedBookSide(Ask, capacity),
	}, nil
}

func (ob *OrderBook) sideOf(s Side) *TrackedBookSide {
	if s == Bid {
		return ob.bid
	}
	return ob.ask
}

// AddQty applies a signed quantity delta at price on the given side.
func (ob *OrderBook) AddQty(s Side, price, delta int64) error {
	return ob.sideOf(s).AddQty(price, delta)
}

// SetQty unconditionally replaces the quantity at price on the given side.
func (ob *OrderBook) SetQty(s Side, price, newQty int64) error {
	return ob.sideOf(s).SetQty(price, newQty)
}

// Delete removes price from the given side unconditionally.
func (ob *OrderBook) Delete(s Side, price int64) error {
	return ob.sideOf(s).Delete(price)
}

// Modify removes the previous (prevPrice, prevQty) level and installs the
// new (newPrice, newQty) level atomically with respect to the top-N cache:
// either both effects land, or the operation fails and the book is
// unchanged. Staging validates that prevPrice exists with exactly prevQty
// before mutating anything; only then are both mutations applied.
func (ob *OrderBook) Modify(s Side, newPrice, newQty, prevPrice, prevQty int64) error {
	side := ob.sideOf(s)

	existing, present := side.QtyAt(prevPrice)
	if !present || existing != prevQty {
		return ErrModifyMismatch
	}

	if err := side.Delete(prevPrice); err != nil {
		// Staging already validated presence; this path is unreachable in
		// practice but kept so Delete's own invariant stays load-bearing.
		return err
	}

	if newQty == 0 {
		// Modifying into a zero quantity: the level is simply gone.
		return nil
	}

	if err := side.SetQty(newPrice, newQty); err != nil {
		// SetQty cannot fail for a positive newQty; this is a safety net,
		// not a routine case. Roll back the removal so the book is
		// unchanged on failure.
		_ = side.SetQty(prevPrice, existing)
		return err
	}
	return nil
}

// TopN returns both sides' top-N caches, best-first.
func (ob *OrderBook) TopN() (bids, asks []PriceLevel) {
	return ob.bid.Snapshot(), ob.ask.Snapshot()
}

// Depth returns the number of distinct prices resting on each side.
func (ob *OrderBook) Depth() (bidDepth, askDepth int) {
	return ob.bid.Len(), ob.ask.Len()
}

// TotalQuantity sums the aggregated quantity resting on each side.
func (ob *OrderBook) TotalQuantity() (bidQty, askQty int64) {
	return ob.bid.TotalQuantity(), ob.ask.TotalQuantity()
}
