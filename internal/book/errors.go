package book

import "errors"

// Error taxonomy for per-row book mutations. Callers compare with
// errors.Is. The dispatch layer returns these errors unwrapped; the stream
// layer reports a failing row's index and dialect as structured log fields
// (and in the audit record) next to the error.
var (
	// ErrDeleteMissingLevel is returned when a decrement or delete targets a
	// price the book does not contain.
	ErrDeleteMissingLevel = errors.New("order_book: delete/decrement at a price the book does not contain")

	// ErrQuantityUnderflow is returned when a mutation would leave an
	// aggregate quantity negative.
	ErrQuantityUnderflow = errors.New("order_book: mutation would leave aggregate quantity negative")

	// ErrZeroInsert is returned when a create-style mutation supplies a zero
	// quantity at an absent price; this is ambiguous and rejected rather than
	// guessed.
	ErrZeroInsert = errors.New("order_book: create at an absent price with zero quantity")

	// ErrModifyMismatch is returned when the stated prev_price/prev_qty of a
	// modify does not correspond to an existing level.
	ErrModifyMismatch = errors.New("order_book: prev_price/prev_qty does not match an existing level")

	// ErrMalformedRow is returned for a dialect-C row with exactly one of
	// prev_price/prev_qty present.
	ErrMalformedRow = errors.New("order_book: row has exactly one of prev_price/prev_qty set")

	// ErrCapacityInvalid is returned at construction when N is negative.
	ErrCapacityInvalid = errors.New("order_book: capacity N must be non-negative")
)
