package classification

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of classifying a transaction list.
type BatchResult struct {
	Classified []model.ClassifiedTransaction // Credits, in input order.
	Errors     []*common.DataError           // Malformed records, in input order.
	Debits     int                           // Debits skipped.
}

// ProgressFunc is called after each credit is classified. It may be called
// from several goroutines at once.
type ProgressFunc func(done, total int)

type batchConfig struct {
	progress ProgressFunc
	workers  int
}

// BatchOption configures ClassifyBatch.
type BatchOption func(*batchConfig)

// WithWorkers bounds the number of classifying goroutines.
func WithWorkers(n int) BatchOption {
	return func(bc *batchConfig) {
		if n > 0 {
			bc.workers = n
		}
	}
}

// WithProgress reports classification progress.
func WithProgress(fn ProgressFunc) BatchOption {
	return func(bc *batchConfig) {
		bc.progress = fn
	}
}

type slot struct {
	err    *common.DataError
	result model.ClassificationResult
	index  int
}

// ClassifyBatch classifies every credit in txns. Debits are skipped and
// counted, malformed credits are reported as DataErrors without aborting.
// The output is identical to classifying sequentially.
func (c *Classifier) ClassifyBatch(ctx context.Context, txns []model.Transaction, industry string, opts ...BatchOption) (BatchResult, error) {
	bc := batchConfig{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&bc)
	}

	var res BatchResult
	slots := make([]slot, 0, len(txns))
	for i, txn := range txns {
		if txn.IsDebit() {
			res.Debits++
			continue
		}
		slots = append(slots, slot{index: i})
	}

	total := len(slots)
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bc.workers)
	for i := range slots {
		s := &slots[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			txn := txns[s.index]
			if err := ValidateCredit(txn); err != nil {
				s.err = common.NewDataError(s.index, txn.Description, err)
			} else {
				s.result = c.classify(txn, industry)
			}
			if bc.progress != nil {
				bc.progress(int(done.Add(1)), total)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchResult{}, err
	}

	res.Classified = make([]model.ClassifiedTransaction, 0, total)
	for _, s := range slots {
		if s.err != nil {
			res.Errors = append(res.Errors, s.err)
			continue
		}
		res.Classified = append(res.Classified, model.ClassifiedTransaction{
			Transaction: txns[s.index],
			Result:      s.result,
		})
	}

	common.LogDebug("Classified transaction batch", common.Fields{
		"credits": len(res.Classified),
		"debits":  res.Debits,
		"errors":  len(res.Errors),
	})

	return res, nil
}
