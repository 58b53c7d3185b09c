package book

// TrackedBookSide wraps a BookSide and maintains an incrementally updated
// top-N cache: an ordered sequence of up to N PriceLevels matching the
// book's best-first order. The cache is a materialized prefix of the book;
// for every k < len(cache), cache[k] equals the k-th best level of the
// underlying BookSide. Capacity N is fixed at construction; N == 0 means
// the cache is always empty and all incremental work is skipped.
type TrackedBookSide struct {
	side     Side
	capacity int
	book     *BookSide
	cache    []PriceLevel
}

func newTrackedBookSide(side Side, capacity int) *TrackedBookSide {
	return &TrackedBookSide{
		side:     side,
		capacity: capacity,
		book:     newBookSide(side),
		cache:    make([]PriceLevel, 0, capacity),
	}
}

// Snapshot returns a cloned copy of the current top-N cache, best-first.
func (t *TrackedBookSide) Snapshot() []PriceLevel {
	out := make([]PriceLevel, len(t.cache))
	copy(out, t.cache)
	return out
}

// Len returns the number of distinct prices on the underlying book.
func (t *TrackedBookSide) Len() int { return t.book.Len() }

// TotalQuantity sums the aggregated quantity across the whole book (not
// just the cached top-N).
func (t *TrackedBookSide) TotalQuantity() int64 { return t.book.TotalQuantity() }

// QtyAt exposes the underlying book's point lookup, used by OrderBook.Modify
// to validate a stated prev_price/prev_qty before staging a modify.
func (t *TrackedBookSide) QtyAt(price int64) (int64, bool) { return t.book.QtyAt(price) }

func (t *TrackedBookSide) AddQty(price, delta int64) error {
	m, err := t.book.AddQty(price, delta)
	if err != nil {
		return err
	}
	t.apply(price, m)
	return nil
}

func (t *TrackedBookSide) SetQty(price, newQty int64) error {
	m, err := t.book.SetQty(price, newQty)
	if err != nil {
		return err
	}
	t.apply(price, m)
	return nil
}

func (t *TrackedBookSide) Delete(price int64) error {
	m, err := t.book.Delete(price)
	if err != nil {
		return err
	}
	t.apply(price, m)
	return nil
}

func (t *TrackedBookSide) apply(price int64, m mutation) {
	if t.capacity == 0 {
		return
	}
	switch m.kind {
	case mutCreated:
		t.insertOrUpdate(m.level)
	case mutUpdated:
		// Quantity changes never reorder: only price changes would, and
		// price changes only arise via a modify, which OrderBook reduces
		// to a delete at the old price plus an insert at the new one.
		t.updateInPlace(m.level)
	case mutDeleted:
		t.removeAndBackfill(price)
	case mutNoop:
	}
}

// insertOrUpdate handles a newly created level (or, defensively, a
// replace-in-place of an existing cached price at the same rank).
func (t *TrackedBookSide) insertOrUpdate(level PriceLevel) {
	for i := range t.cache {
		if t.cache[i].Price == level.Price {
			t.cache[i] = level
			return
		}
	}

	idx := len(t.cache)
	for i, existing := range t.cache {
		if t.side.better(level.Price, existing.Price) {
			idx = i
			break
		}
	}

	if idx == len(t.cache) && len(t.cache) >= t.capacity {
		// Strictly worse than the current N-th level: no cache effect.
		return
	}

	t.cache = append(t.cache, PriceLevel{})
	copy(t.cache[idx+1:], t.cache[idx:len(t.cache)-1])
	t.cache[idx] = level
	if len(t.cache) > t.capacity {
		t.cache = t.cache[:t.capacity]
	}
}

// updateInPlace adjusts the quantity of a price already present in the
// cache. A price ranked at or beyond N is not cached, so the update is a
// no-op there: the book's point lookup stays authoritative.
func (t *TrackedBookSide) updateInPlace(level PriceLevel) {
	for i := range t.cache {
		if t.cache[i].Price == level.Price {
			t.cache[i].Qty = level.Qty
			return
		}
	}
}

// removeAndBackfill drops a deleted price from the cache, if present, and
// fetches a new tail entry from the book when the book remains at least N
// deep. A deletion at a price beyond the cache window never needs a
// backfill: the top-N set it left behind is still the top-N set.
func (t *TrackedBookSide) removeAndBackfill(price int64) {
	idx := -1
	for i := range t.cache {
		if t.cache[i].Price == price {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	t.cache = append(t.cache[:idx], t.cache[idx+1:]...)
	if len(t.cache) < t.capacity {
		if next, ok := t.book.NthBestFrom(len(t.cache)); ok {
			t.cache = append(t.cache, next)
		}
	}
}
