package book

// PriceLevel is a single price with its aggregated resting quantity. It is
// an ephemeral value: created during a mutation, copied into a
// TrackedBookSide's cache, and discarded. Comparing two levels with ==
// checks both Price and Qty; there is no price-only equality method, and
// the cache matches levels by comparing the Price field directly.
type PriceLevel struct {
	Price int64
	Qty   int64
}

// ApplyDelta adds delta to the level's quantity and returns the resulting
// quantity. A zero result is legal and signals the caller to remove the
// level; a negative result is invalid.
func (p PriceLevel) ApplyDelta(delta int64) (int64, error) {
	newQty := p.Qty + delta
	if newQty < 0 {
		return 0, ErrQuantityUnderflow
	}
	return newQty, nil
}
