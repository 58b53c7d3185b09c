package book

import "github.com/google/btree"

// btreeDegree mirrors the degree used for price-level indexing in the
// pack's own btree-backed order book (VictorVVedtion-perp-dex); it affects
// node size/cache efficiency, not correctness.
const btreeDegree = 32

// priceItem is the btree.Item wrapping a raw tick price. The tree always
// orders ascending by price; BookSide chooses Ascend (Ask) or Descend (Bid)
// at traversal time to get best-first order out of a single index.
type priceItem int64

func (p priceItem) Less(than btree.Item) bool {
	return p < than.(priceItem)
}

// mutationKind classifies the effect of a BookSide primitive on a single
// price, so TrackedBookSide knows how to update its cache without
// rescanning the book.
type mutationKind int

const (
	mutNoop mutationKind = iota
	mutCreated
	mutUpdated
	mutDeleted
)

type mutation struct {
	kind  mutationKind
	level PriceLevel
}

// BookSide is one side of the book: a price->quantity mapping with an
// ordered index over keys for fast best-first access. Point lookup is a map
// read; ordered access goes through the btree. Every stored quantity is
// strictly positive; a quantity-zero outcome deletes the key.
type BookSide struct {
	side   Side
	qty    map[int64]int64
	prices *btree.BTree
}

func newBookSide(side Side) *BookSide {
	return &BookSide{
		side:   side,
		qty:    make(map[int64]int64),
		prices: btree.New(btreeDegree),
	}
}

// QtyAt returns the aggregated quantity at price and whether it is present.
func (b *BookSide) QtyAt(price int64) (int64, bool) {
	q, ok := b.qty[price]
	return q, ok
}

// Len returns the number of distinct prices on the side.
func (b *BookSide) Len() int {
	return len(b.qty)
}

// TotalQuantity sums the aggregated quantity across every price on the side.
func (b *BookSide) TotalQuantity() int64 {
	var total int64
	for _, q := range b.qty {
		total += q
	}
	return total
}

// bestFirstVisit walks prices in best-first order for this side, stopping
// when fn returns false.
func (b *BookSide) bestFirstVisit(fn func(price int64) bool) {
	visit := func(item btree.Item) bool {
		return fn(int64(item.(priceItem)))
	}
	if b.side == Bid {
		b.prices.Descend(visit)
	} else {
		b.prices.Ascend(visit)
	}
}

// Best returns the best level by side ordering, if any.
func (b *BookSide) Best() (PriceLevel, bool) {
	var level PriceLevel
	found := false
	b.bestFirstVisit(func(price int64) bool {
		level = PriceLevel{Price: price, Qty: b.qty[price]}
		found = true
		return false
	})
	return level, found
}

// TopN recomputes the best-first top-N levels directly from the book. It is
// the "recompute oracle" TrackedBookSide's incremental cache is checked
// against, and is also useful to a host wanting a one-off snapshot without
// constructing a TrackedBookSide.
func (b *BookSide) TopN(n int) []PriceLevel {
	if n <= 0 {
		return nil
	}
	out := make([]PriceLevel, 0, n)
	b.bestFirstVisit(func(price int64) bool {
		out = append(out, PriceLevel{Price: price, Qty: b.qty[price]})
		return len(out) < n
	})
	return out
}

// NthBestFrom returns the best-first level at 0-indexed rank skip, if the
// book is deep enough. TrackedBookSide uses it to backfill its cache's tail
// after a deletion shortens the book at or below the cache's capacity.
func (b *BookSide) NthBestFrom(skip int) (PriceLevel, bool) {
	idx := 0
	var level PriceLevel
	found := false
	b.bestFirstVisit(func(price int64) bool {
		if idx == skip {
			level = PriceLevel{Price: price, Qty: b.qty[price]}
			found = true
			return false
		}
		idx++
		return true
	})
	return level, found
}

// AddQty applies a signed delta at price. If price is absent and delta > 0,
// a new level is created; delta <= 0 against an absent price fails. If
// price is present, delta is applied; a zero result deletes the level, a
// negative result fails and leaves the book unchanged.
func (b *BookSide) AddQty(price, delta int64) (mutation, error) {
	existing, present := b.qty[price]
	if !present {
		if delta > 0 {
			b.qty[price] = delta
			b.prices.ReplaceOrInsert(priceItem(price))
			return mutation{kind: mutCreated, level: PriceLevel{Price: price, Qty: delta}}, nil
		}
		if delta == 0 {
			return mutation{}, ErrZeroInsert
		}
		return mutation{}, ErrDeleteMissingLevel
	}

	newQty := existing + delta
	if newQty < 0 {
		return mutation{}, ErrQuantityUnderflow
	}
	if newQty == 0 {
		delete(b.qty, price)
		b.prices.Delete(priceItem(price))
		return mutation{kind: mutDeleted, level: PriceLevel{Price: price}}, nil
	}
	b.qty[price] = newQty
	return mutation{kind: mutUpdated, level: PriceLevel{Price: price, Qty: newQty}}, nil
}

// SetQty unconditionally replaces the quantity at price. A zero quantity
// deletes the level (a no-op if it was already absent); a negative
// quantity fails.
func (b *BookSide) SetQty(price, newQty int64) (mutation, error) {
	if newQty < 0 {
		return mutation{}, ErrQuantityUnderflow
	}

	_, present := b.qty[price]
	if newQty == 0 {
		if !present {
			return mutation{kind: mutNoop}, nil
		}
		delete(b.qty, price)
		b.prices.Delete(priceItem(price))
		return mutation{kind: mutDeleted, level: PriceLevel{Price: price}}, nil
	}

	b.qty[price] = newQty
	if !present {
		b.prices.ReplaceOrInsert(priceItem(price))
		return mutation{kind: mutCreated, level: PriceLevel{Price: price, Qty: newQty}}, nil
	}
	return mutation{kind: mutUpdated, level: PriceLevel{Price: price, Qty: newQty}}, nil
}

// Delete removes price unconditionally; it fails if price is absent.
func (b *BookSide) Delete(price int64) (mutation, error) {
	if _, present := b.qty[price]; !present {
		return mutation{}, ErrDeleteMissingLevel
	}
	delete(b.qty, price)
	b.prices.Delete(priceItem(price))
	return mutation{kind: mutDeleted, level: PriceLevel{Price: price}}, nil
}
