package classification

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Veraticus/true-revenue/internal/common"
	"github.com/Veraticus/true-revenue/internal/model"
	"github.com/Veraticus/true-revenue/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBatch(t *testing.T) {
	c := newTestClassifier(t)

	txns := testutil.NewLedger(t).
		On("2024-01-15").Credit("SQUARE INC DEPOSIT", "5000").
		On("2024-01-16").Credit("STRIPE TRANSFER", "3000").
		On("2024-01-17").Credit("", "500").
		On("2024-01-18").Credit("ONDECK FUNDING", "25000").
		On("2024-01-21").Debit("CHECK #1234", "2000").
		On("2024-01-22").Debit("ONDECK DAILY PAYMENT", "500").
		On("2024-01-23").Credit("ZELLE FROM CUSTOMER", "-20").
		Build()

	res, err := c.ClassifyBatch(context.Background(), txns, "", WithWorkers(3))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Debits)
	require.Len(t, res.Classified, 3)
	assert.Equal(t, "SQUARE INC DEPOSIT", res.Classified[0].Transaction.Description)
	assert.Equal(t, "STRIPE TRANSFER", res.Classified[1].Transaction.Description)
	assert.Equal(t, model.CategoryExcluded, res.Classified[2].Result.Category)

	require.Len(t, res.Errors, 2)
	assert.Equal(t, 2, res.Errors[0].Index)
	assert.True(t, errors.Is(res.Errors[0], common.ErrMissingDescription))
	assert.True(t, errors.Is(res.Errors[0], common.ErrInvalidTransaction))
	assert.Equal(t, 6, res.Errors[1].Index)
	assert.True(t, errors.Is(res.Errors[1], common.ErrNegativeAmount))
}

func TestClassifyBatchSkipsUndatedCredits(t *testing.T) {
	c := newTestClassifier(t)

	txns := testutil.NewLedger(t).
		On("2024-01-15").Credit("SQUARE INC DEPOSIT", "5000").
		Credit("STRIPE TRANSFER", "3000").
		Build()
	txns[1].Date = time.Time{}

	res, err := c.ClassifyBatch(context.Background(), txns, "")
	require.NoError(t, err)

	require.Len(t, res.Classified, 1)
	assert.Equal(t, "SQUARE INC DEPOSIT", res.Classified[0].Transaction.Description)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 1, res.Errors[0].Index)
	assert.ErrorIs(t, res.Errors[0], common.ErrMissingDate)
}

func TestClassifyBatchMatchesSequential(t *testing.T) {
	c := newTestClassifier(t)

	descriptions := []string{
		"SQUARE INC DEPOSIT", "KABBAGE INC ADVANCE", "ZELLE FROM JOHN SMITH",
		"OWNER LOAN", "MYSTERY CREDIT", "DOORDASH INC", "TRANSFER FROM CHK *5678",
	}
	ledger := testutil.NewLedger(t)
	for i := 0; i < 200; i++ {
		day := fmt.Sprintf("2024-%02d-%02d", i%12+1, i%28+1)
		ledger.On(day).Credit(descriptions[i%len(descriptions)], fmt.Sprintf("%d.%02d", 100+i*37, i%100))
	}
	txns := ledger.Build()

	parallel, err := c.ClassifyBatch(context.Background(), txns, "restaurant", WithWorkers(8))
	require.NoError(t, err)

	require.Len(t, parallel.Classified, len(txns))
	for i, txn := range txns {
		want, err := c.Classify(txn, "restaurant")
		require.NoError(t, err)
		assert.Equal(t, want, parallel.Classified[i].Result, "transaction %d", i)
		assert.Equal(t, txn, parallel.Classified[i].Transaction)
	}
}

func TestClassifyBatchProgress(t *testing.T) {
	c := newTestClassifier(t)
	txns := testutil.NewLedger(t).
		Credit("SQUARE INC DEPOSIT", "10").
		Credit("SQUARE INC DEPOSIT", "20").
		Debit("RENT", "900").
		Credit("SQUARE INC DEPOSIT", "30").
		Build()

	var calls atomic.Int32
	var lastTotal atomic.Int32
	_, err := c.ClassifyBatch(context.Background(), txns, "", WithProgress(func(_, total int) {
		calls.Add(1)
		lastTotal.Store(int32(total))
	}))
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, int32(3), lastTotal.Load())
}

func TestClassifyBatchCanceled(t *testing.T) {
	c := newTestClassifier(t)
	txns := testutil.NewLedger(t).Credit("SQUARE INC DEPOSIT", "10").Build()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ClassifyBatch(ctx, txns, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClassifyBatchEmpty(t *testing.T) {
	c := newTestClassifier(t)

	res, err := c.ClassifyBatch(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Empty(t, res.Classified)
	assert.Empty(t, res.Errors)
	assert.Zero(t, res.Debits)
}
