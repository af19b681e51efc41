package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"cafe-pos/internal/apperr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	newPayment := func() *Payment {
		return &Payment{
			ID:             "pay-1",
			OrderID:        "order-1",
			Amount:         100000,
			Method:         MethodCash,
			Status:         StatusCompleted,
			Reference:      "PAY-20260314-092653-589-0042",
			CustomerPaid:   int64Ptr(100000),
			ChangeAmount:   int64Ptr(0),
			DiscountAmount: 10000,
			TaxAmount:      10000,
		}
	}

	t.Run("Success", func(t *testing.T) {
		p := newPayment()
		mock.ExpectQuery("INSERT INTO payments").
			WithArgs(p.ID, p.OrderID, p.Amount, p.Method, p.Status, p.Reference,
				p.CustomerPaid, p.ChangeAmount, p.DiscountAmount, p.TaxAmount).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		require.NoError(t, repo.Create(context.Background(), p))
		assert.Equal(t, now, p.CreatedAt)
	})

	t.Run("Duplicate reference", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO payments").WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(context.Background(), newPayment())
		assert.ErrorIs(t, err, ErrDuplicatePayment)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("DB error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO payments").WillReturnError(errors.New("database error"))

		assert.Error(t, repo.Create(context.Background(), newPayment()))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()
	columns := []string{
		"id", "order_id", "amount", "method", "status", "reference",
		"customer_paid", "change_amount", "discount_amount", "tax_amount",
		"created_at", "updated_at",
	}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(columns).
			AddRow("pay-2", "order-1", int64(55000), "card", "completed", "PAY-2", nil, nil, int64(0), int64(5000), now, now).
			AddRow("pay-1", "order-1", int64(100000), "cash", "completed", "PAY-1", int64(100000), int64(0), int64(10000), int64(10000), now, now)
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE order_id = \\$1 ORDER BY created_at DESC").
			WithArgs("order-1").
			WillReturnRows(rows)

		payments, err := repo.ListByOrder(context.Background(), "order-1")
		require.NoError(t, err)
		require.Len(t, payments, 2)
		assert.Equal(t, MethodCard, payments[0].Method)
		assert.Nil(t, payments[0].CustomerPaid)
		assert.Equal(t, int64(100000), *payments[1].CustomerPaid)
		assert.Equal(t, int64(0), *payments[1].ChangeAmount)
	})

	t.Run("Query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM payments").WillReturnError(errors.New("timeout"))

		_, err := repo.ListByOrder(context.Background(), "order-1")
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository().(*memoryRepository)
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	ctx := context.Background()

	first := &Payment{ID: "p1", OrderID: "o1", Reference: "R1", CustomerPaid: int64Ptr(50000)}
	second := &Payment{ID: "p2", OrderID: "o1", Reference: "R2"}
	other := &Payment{ID: "p3", OrderID: "o2", Reference: "R3"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, other))

	t.Run("Newest first", func(t *testing.T) {
		payments, err := repo.ListByOrder(ctx, "o1")
		require.NoError(t, err)
		require.Len(t, payments, 2)
		assert.Equal(t, "p2", payments[0].ID)
		assert.Equal(t, "p1", payments[1].ID)
	})

	t.Run("Returned copies are detached", func(t *testing.T) {
		payments, _ := repo.ListByOrder(ctx, "o1")
		*payments[1].CustomerPaid = 1

		again, _ := repo.ListByOrder(ctx, "o1")
		assert.Equal(t, int64(50000), *again[1].CustomerPaid)
	})

	t.Run("Duplicate rejected", func(t *testing.T) {
		err := repo.Create(ctx, &Payment{ID: "p4", OrderID: "o1", Reference: "R1"})
		assert.ErrorIs(t, err, ErrDuplicatePayment)
	})
}
