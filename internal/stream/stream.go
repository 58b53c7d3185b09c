// Package stream is the external collaborator driving an OrderBook over a
// columnar row stream. It is the CLI/benchmark harness's home for logging,
// CSV parsing, and the optional crossed-book diagnostic; the core packages
// (book, dispatch, snapshot) know nothing about any of it.
package stream

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"order-matching-engine/internal/audit"
	"order-matching-engine/internal/book"
	"order-matching-engine/internal/dispatch"
	"order-matching-engine/internal/snapshot"

	"github.com/rs/zerolog"
)

// Options configures one Processor run.
type Options struct {
	Capacity          int
	Dialect           dispatch.Dialect
	WarnOnCrossedBook bool
}

// Processor drives an OrderBook row-by-row over a CSV stream and writes one
// aligned snapshot row per input row.
type Processor struct {
	dispatcher *dispatch.UpdateDispatcher
	opts       Options
	logger     zerolog.Logger
	auditSink  *audit.Sink
}

// New constructs a Processor. auditSink may be nil to disable row-error
// auditing.
func New(opts Options, logger zerolog.Logger, auditSink *audit.Sink) (*Processor, error) {
	ob, err := book.NewOrderBook(opts.Capacity)
	if err != nil {
		return nil, err
	}
	return &Processor{
		dispatcher: dispatch.New(ob, opts.Dialect),
		opts:       opts,
		logger:     logger,
		auditSink:  auditSink,
	}, nil
}

// snapshotHeader returns the CSV header for the fixed-shape output row.
func snapshotHeader(n int) []string {
	header := make([]string, 0, 4*n)
	for _, prefix := range []string{"bid_price_", "bid_qty_", "ask_price_", "ask_qty_"} {
		for i := 0; i < n; i++ {
			header = append(header, fmt.Sprintf("%s%d", prefix, i))
		}
	}
	return header
}

func formatCell(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func encodeRow(row snapshot.Row) []string {
	n := len(row.BidPrice)
	out := make([]string, 0, 4*n)
	for i := 0; i < n; i++ {
		out = append(out, formatCell(row.BidPrice[i]))
	}
	for i := 0; i < n; i++ {
		out = append(out, formatCell(row.BidQty[i]))
	}
	for i := 0; i < n; i++ {
		out = append(out, formatCell(row.AskPrice[i]))
	}
	for i := 0; i < n; i++ {
		out = append(out, formatCell(row.AskQty[i]))
	}
	return out
}

// Run reads dialect-shaped CSV rows from r and writes one aligned snapshot
// row per input row to w. Row order is preserved; a failing row is logged
// (and optionally audited) but does not halt the stream, leaving the
// decision to abort to the host.
func (p *Processor) Run(r io.Reader, w io.Writer) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	if _, err := reader.Read(); err != nil { // discard the input header
		return fmt.Errorf("stream: reading header: %w", err)
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write(snapshotHeader(p.opts.Capacity)); err != nil {
		return fmt.Errorf("stream: writing output header: %w", err)
	}

	var rowIndex int64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("stream: reading row %d: %w", rowIndex, err)
		}

		if procErr := p.processRecord(record); procErr != nil {
			p.logger.Error().
				Int64("row", rowIndex).
				Str("dialect", p.dispatcher.Dialect().String()).
				Err(procErr).
				Msg("row failed, book state rolled back to pre-row state")

			if p.auditSink != nil {
				if auditErr := p.auditSink.RecordError(rowIndex, p.dispatcher.Dialect().String(), procErr.Error()); auditErr != nil {
					p.logger.Warn().Err(auditErr).Msg("audit sink write failed")
				}
			}
		}

		bids, asks := p.dispatcher.TopN()
		if p.opts.WarnOnCrossedBook {
			p.warnIfCrossed(bids, asks, rowIndex)
		}

		out := snapshot.Encode(p.opts.Capacity, bids, asks)
		if err := writer.Write(encodeRow(out)); err != nil {
			return fmt.Errorf("stream: writing row %d: %w", rowIndex, err)
		}
		rowIndex++
	}
	return writer.Error()
}

// warnIfCrossed logs, but never errors, when the best bid is at or above the
// best ask. The book itself never enforces this; it is a diagnostic living
// entirely outside the write path.
func (p *Processor) warnIfCrossed(bids, asks []book.PriceLevel, rowIndex int64) {
	if len(bids) == 0 || len(asks) == 0 {
		return
	}
	if bids[0].Price >= asks[0].Price {
		p.logger.Warn().
			Int64("row", rowIndex).
			Int64("best_bid", bids[0].Price).
			Int64("best_ask", asks[0].Price).
			Msg("crossed book")
	}
}

func (p *Processor) processRecord(record []string) error {
	switch p.dispatcher.Dialect() {
	case dispatch.DialectA:
		row, err := parseRowA(record)
		if err != nil {
			return err
		}
		return p.dispatcher.ProcessA(row)
	case dispatch.DialectB:
		row, err := parseRowB(record)
		if err != nil {
			return err
		}
		return p.dispatcher.ProcessB(row)
	default:
		row, err := parseRowC(record)
		if err != nil {
			return err
		}
		return p.dispatcher.ProcessC(row)
	}
}

func parseSide(s string) (book.Side, error) {
	switch s {
	case "Bid", "bid", "B":
		return book.Bid, nil
	case "Ask", "ask", "A":
		return book.Ask, nil
	default:
		return 0, fmt.Errorf("stream: unrecognized side %q", s)
	}
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseRowA(record []string) (dispatch.RowA, error) {
	if len(record) < 3 {
		return dispatch.RowA{}, fmt.Errorf("stream: dialect A row needs 3 fields, got %d", len(record))
	}
	side, err := parseSide(record[0])
	if err != nil {
		return dispatch.RowA{}, err
	}
	price, err := parseInt(record[1])
	if err != nil {
		return dispatch.RowA{}, fmt.Errorf("stream: parsing price: %w", err)
	}
	qty, err := parseInt(record[2])
	if err != nil {
		return dispatch.RowA{}, fmt.Errorf("stream: parsing qty: %w", err)
	}
	return dispatch.RowA{Side: side, Price: price, Qty: qty}, nil
}

func parseRowB(record []string) (dispatch.RowB, error) {
	if len(record) < 3 {
		return dispatch.RowB{}, fmt.Errorf("stream: dialect B row needs 3 fields, got %d", len(record))
	}
	side, err := parseSide(record[0])
	if err != nil {
		return dispatch.RowB{}, err
	}
	price, err := parseInt(record[1])
	if err != nil {
		return dispatch.RowB{}, fmt.Errorf("stream: parsing price: %w", err)
	}
	delta, err := parseInt(record[2])
	if err != nil {
		return dispatch.RowB{}, fmt.Errorf("stream: parsing delta: %w", err)
	}
	return dispatch.RowB{Side: side, Price: price, Delta: delta}, nil
}

func parseRowC(record []string) (dispatch.RowC, error) {
	if len(record) < 5 {
		return dispatch.RowC{}, fmt.Errorf("stream: dialect C row needs 5 fields, got %d", len(record))
	}
	side, err := parseSide(record[0])
	if err != nil {
		return dispatch.RowC{}, err
	}
	price, err := parseInt(record[1])
	if err != nil {
		return dispatch.RowC{}, fmt.Errorf("stream: parsing price: %w", err)
	}
	qty, err := parseInt(record[2])
	if err != nil {
		return dispatch.RowC{}, fmt.Errorf("stream: parsing qty: %w", err)
	}

	row := dispatch.RowC{Side: side, Price: price, Qty: qty}
	if record[3] != "" {
		prevPrice, err := parseInt(record[3])
		if err != nil {
			return dispatch.RowC{}, fmt.Errorf("stream: parsing prev_price: %w", err)
		}
		row.PrevPrice = &prevPrice
	}
	if record[4] != "" {
		prevQty, err := parseInt(record[4])
		if err != nil {
			return dispatch.RowC{}, fmt.Errorf("stream: parsing prev_qty: %w", err)
		}
		row.PrevQty = &prevQty
	}
	return row, nil
}
