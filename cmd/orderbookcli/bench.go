package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"order-matching-engine/internal/book"
	"order-matching-engine/internal/dispatch"

	"github.com/spf13/cobra"
)

const (
	benchBatchSize = 500
	nanoToSeconds  = 1e-9
)

func newBenchCmd() *cobra.Command {
	var capacity, rows, priceLevels int
	var seed int64

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure dispatch throughput against synthetic rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(capacity, rows, priceLevels, seed)
		},
	}
	cmd.Flags().IntVar(&capacity, "capacity", 10, "top-N cache capacity")
	cmd.Flags().IntVar(&rows, "rows", 100000, "number of synthetic dialect B rows to dispatch")
	cmd.Flags().IntVar(&priceLevels, "price-levels", 200, "number of distinct price levels per side")
	cmd.Flags().Int64Var(&seed, "seed", 1, "PRNG seed for the synthetic feed")
	return cmd
}

// runBench replays a synthetic dialect B feed in fixed-size batches, timing
// each batch the way the pack's replay harness times each order batch, then
// reports per-batch mean/stddev latency, overall throughput, and final book
// depth/quantity.
func runBench(capacity, rows, priceLevels int, seed int64) error {
	ob, err := book.NewOrderBook(capacity)
	if err != nil {
		return err
	}
	d := dispatch.New(ob, dispatch.DialectB)

	feed := generateFeed(rows, priceLevels, seed)

	batchLatencies := make([]time.Duration, 0, rows/benchBatchSize+1)
	total := time.Now()
	for i := 0; i < len(feed); i += benchBatchSize {
		end := i + benchBatchSize
		if end > len(feed) {
			end = len(feed)
		}
		begin := time.Now()
		for _, row := range feed[i:end] {
			_ = d.ProcessB(row)
		}
		batchLatencies = append(batchLatencies, time.Since(begin))
	}
	elapsed := time.Since(total)

	mean, stddev := meanStdDev(batchLatencies)
	fmt.Printf("[dispatch] rows=%d capacity=%d batch=%d\n", rows, capacity, benchBatchSize)
	fmt.Printf("[dispatch] mean(batch latency)=%.6fs sd(batch latency)=%.6fs\n", mean*nanoToSeconds, stddev*nanoToSeconds)
	fmt.Printf("[dispatch] %.1f rows/sec\n", float64(rows)/(float64(elapsed)*nanoToSeconds))

	bidDepth, askDepth := ob.Depth()
	bidQty, askQty := ob.TotalQuantity()
	fmt.Printf("[book] bid_depth=%d ask_depth=%d bid_qty=%d ask_qty=%d\n", bidDepth, askDepth, bidQty, askQty)
	return nil
}

func generateFeed(rows, priceLevels int, seed int64) []dispatch.RowB {
	r := rand.New(rand.NewSource(seed))
	feed := make([]dispatch.RowB, rows)
	for i := range feed {
		side := book.Bid
		if r.Intn(2) == 1 {
			side = book.Ask
		}
		feed[i] = dispatch.RowB{
			Side:  side,
			Price: int64(r.Intn(priceLevels)),
			Delta: int64(r.Intn(21) - 10),
		}
	}
	return feed
}

func meanStdDev(d []time.Duration) (mean, stddev float64) {
	if len(d) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range d {
		sum += float64(v)
	}
	mean = sum / float64(len(d))

	var sqDiff float64
	for _, v := range d {
		diff := float64(v) - mean
		sqDiff += diff * diff
	}
	stddev = math.Sqrt(sqDiff / float64(len(d)))
	return mean, stddev
}
