package order

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"cafe-pos/internal/apperr"
	"cafe-pos/internal/logger"
	"cafe-pos/internal/notify"
	"cafe-pos/internal/payment"
	"cafe-pos/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// --- Mocks ---

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(ctx context.Context, e notify.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// failingRepository fails the named operation and delegates the rest.
type failingRepository struct {
	Repository
	failOn string
	err    error
}

func (f *failingRepository) fail(op string) error {
	if f.failOn == op {
		return f.err
	}
	return nil
}

func (f *failingRepository) Create(ctx context.Context, o *Order) error {
	if err := f.fail("Create"); err != nil {
		return err
	}
	return f.Repository.Create(ctx, o)
}

func (f *failingRepository) AddLine(ctx context.Context, l *Line) error {
	if err := f.fail("AddLine"); err != nil {
		return err
	}
	return f.Repository.AddLine(ctx, l)
}

func (f *failingRepository) Update(ctx context.Context, o *Order) error {
	if err := f.fail("Update"); err != nil {
		return err
	}
	return f.Repository.Update(ctx, o)
}

func (f *failingRepository) GetActiveByTable(ctx context.Context, tableID string) (*Order, error) {
	if err := f.fail("GetActiveByTable"); err != nil {
		return nil, err
	}
	return f.Repository.GetActiveByTable(ctx, tableID)
}

func (f *failingRepository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	if err := f.fail("GetByID"); err != nil {
		return nil, err
	}
	return f.Repository.GetByID(ctx, orderID)
}

func (f *failingRepository) ListActive(ctx context.Context) ([]Order, error) {
	if err := f.fail("ListActive"); err != nil {
		return nil, err
	}
	return f.Repository.ListActive(ctx)
}

// --- Helpers ---

type fixture struct {
	svc      *service
	repo     Repository
	payments payment.Repository
	notifier *MockNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	notifier := new(MockNotifier)
	notifier.On("Publish", mock.Anything, mock.Anything).Return(nil)

	repo := NewMemoryRepository()
	payments := payment.NewMemoryRepository()
	svc := NewService(repo, table.NewMemoryRepository(table.DefaultLayout()...), payments, notifier).(*service)

	ids := 0
	svc.newID = func() string {
		ids++
		return fmt.Sprintf("id-%d", ids)
	}
	clock := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	return &fixture{svc: svc, repo: repo, payments: payments, notifier: notifier}
}

func coffee(qty int) Candidate {
	return Candidate{MenuItemID: "coffee-da", Name: "Cà phê đá", Price: 25000, Quantity: qty}
}

func (f *fixture) pay(t *testing.T, o *Order) *payment.Payment {
	t.Helper()
	p := &payment.Payment{
		ID:             "pay-" + o.ID,
		OrderID:        o.ID,
		Amount:         o.Total,
		Method:         payment.MethodCard,
		Status:         payment.StatusCompleted,
		Reference:      "PAY-" + o.ID,
		TaxAmount:      o.Total / 10,
		DiscountAmount: 0,
	}
	require.NoError(t, f.payments.Create(context.Background(), p))
	return p
}

// --- Tests ---

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Opens order on empty table", func(t *testing.T) {
		f := newFixture(t)

		o, err := f.svc.AddItem(ctx, "ban1", coffee(1))
		require.NoError(t, err)

		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, "ban1", o.TableID)
		require.Len(t, o.Lines, 1)
		assert.Equal(t, int64(25000), o.Total)
		f.notifier.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e notify.Event) bool {
			return e.Type == notify.EventOrderCreated && e.TableID == "ban1"
		}))

		stored, err := f.repo.GetActiveByTable(ctx, "ban1")
		require.NoError(t, err)
		assert.Equal(t, o.ID, stored.ID)
		assert.Len(t, stored.Lines, 1)
	})

	t.Run("Same item increments quantity", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.AddItem(ctx, "ban1", coffee(1))
		require.NoError(t, err)
		o, err := f.svc.AddItem(ctx, "ban1", coffee(2))
		require.NoError(t, err)

		require.Len(t, o.Lines, 1)
		assert.Equal(t, 3, o.Lines[0].Quantity)
		assert.Equal(t, int64(75000), o.Total)
	})

	t.Run("Different item appends line", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.AddItem(ctx, "vip2", coffee(1))
		require.NoError(t, err)
		o, err := f.svc.AddItem(ctx, "vip2", Candidate{MenuItemID: "banh-mi", Name: "Bánh mì", Price: 25000, Quantity: 1, Notes: "không hành"})
		require.NoError(t, err)

		require.Len(t, o.Lines, 2)
		assert.Equal(t, "banh-mi", o.Lines[1].MenuItemID)
		assert.Equal(t, "không hành", *o.Lines[1].Notes)
		assert.Equal(t, int64(50000), o.Total)
	})

	t.Run("Price change keeps stored price and appends", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.AddItem(ctx, "ban4", coffee(2))
		require.NoError(t, err)
		repriced := coffee(1)
		repriced.Price = 27000
		o, err := f.svc.AddItem(ctx, "ban4", repriced)
		require.NoError(t, err)

		require.Len(t, o.Lines, 2)
		assert.Equal(t, int64(25000), o.Lines[0].Price)
		assert.Equal(t, 2, o.Lines[0].Quantity)
		assert.Equal(t, int64(27000), o.Lines[1].Price)
		assert.Equal(t, int64(77000), o.Total)
	})

	t.Run("Unknown table", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.AddItem(ctx, "ban99", coffee(1))
		assert.ErrorIs(t, err, ErrTableNotFound)
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		_, err = f.svc.AddItem(ctx, "", coffee(1))
		assert.ErrorIs(t, err, ErrTableNotFound)
	})

	t.Run("Invalid candidate", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.AddItem(ctx, "ban1", coffee(0))
		assert.ErrorIs(t, err, apperr.ErrValidation)

		_, err = f.svc.AddItem(ctx, "ban1", Candidate{Name: "?", Price: 1000, Quantity: 1})
		assert.ErrorIs(t, err, apperr.ErrValidation)

		neg := coffee(1)
		neg.Price = -1
		_, err = f.svc.AddItem(ctx, "ban1", neg)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("Store failure surfaces as storage error", func(t *testing.T) {
		f := newFixture(t)
		cause := errors.New("connection refused")
		f.svc.repo = &failingRepository{Repository: f.repo, failOn: "Create", err: cause}

		_, err := f.svc.AddItem(ctx, "ban1", coffee(1))
		assert.ErrorIs(t, err, apperr.ErrStorage)
		assert.ErrorIs(t, err, cause)
		assert.False(t, f.svc.View().IsOccupied("ban1"))
	})

	t.Run("Notification failure does not fail the add", func(t *testing.T) {
		f := newFixture(t)
		broken := new(MockNotifier)
		broken.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
		f.svc.notifier = broken

		o, err := f.svc.AddItem(ctx, "takeaway", coffee(1))
		require.NoError(t, err)
		assert.NotNil(t, o)
	})
}

func TestService_AddItem_TotalMatchesLines(t *testing.T) {
	ctx := context.Background()
	catalog := []Candidate{
		{MenuItemID: "coffee-da", Name: "Cà phê đá", Price: 25000},
		{MenuItemID: "bac-xiu", Name: "Bạc xỉu", Price: 30000},
		{MenuItemID: "tra-dao", Name: "Trà đào", Price: 35000},
		{MenuItemID: "pho-bo", Name: "Phở bò", Price: 60000},
	}

	for seed := int64(1); seed <= 20; seed++ {
		f := newFixture(t)
		rng := rand.New(rand.NewSource(seed))

		var (
			want     int64
			distinct = map[string]bool{}
			o        *Order
			err      error
		)
		steps := 1 + rng.Intn(15)
		for i := 0; i < steps; i++ {
			c := catalog[rng.Intn(len(catalog))]
			c.Quantity = 1 + rng.Intn(3)
			want += c.Price * int64(c.Quantity)
			distinct[c.MenuItemID] = true

			o, err = f.svc.AddItem(ctx, "ban5", c)
			require.NoError(t, err)
		}

		var sum int64
		for _, l := range o.Lines {
			sum += l.Price * int64(l.Quantity)
		}
		assert.Equal(t, want, o.Total, "seed %d", seed)
		assert.Equal(t, sum, o.Total, "seed %d", seed)
		assert.Len(t, o.Lines, len(distinct), "seed %d", seed)
	}
}

func TestService_UpdateItemQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Sets exact quantity", func(t *testing.T) {
		f := newFixture(t)
		o, _ := f.svc.AddItem(ctx, "ban1", coffee(1))

		o, err := f.svc.UpdateItemQuantity(ctx, "ban1", o.Lines[0].ID, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, o.Lines[0].Quantity)
		assert.Equal(t, int64(100000), o.Total)
	})

	t.Run("Zero removes line", func(t *testing.T) {
		f := newFixture(t)
		_, _ = f.svc.AddItem(ctx, "ban1", coffee(1))
		o, _ := f.svc.AddItem(ctx, "ban1", Candidate{MenuItemID: "latte", Name: "Latte", Price: 48000, Quantity: 1})

		o, err := f.svc.UpdateItemQuantity(ctx, "ban1", o.Lines[0].ID, 0)
		require.NoError(t, err)
		require.Len(t, o.Lines, 1)
		assert.Equal(t, "latte", o.Lines[0].MenuItemID)
		assert.Equal(t, int64(48000), o.Total)
	})

	t.Run("Removing last line deletes order", func(t *testing.T) {
		f := newFixture(t)
		o, _ := f.svc.AddItem(ctx, "ban1", coffee(2))

		res, err := f.svc.RemoveItem(ctx, "ban1", o.Lines[0].ID)
		require.NoError(t, err)
		assert.Nil(t, res)

		stored, err := f.repo.GetActiveByTable(ctx, "ban1")
		require.NoError(t, err)
		assert.Nil(t, stored)
		assert.False(t, f.svc.View().IsOccupied("ban1"))

		_, err = f.svc.ActiveOrder(ctx, "ban1")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Negative quantity removes", func(t *testing.T) {
		f := newFixture(t)
		o, _ := f.svc.AddItem(ctx, "ban1", coffee(2))

		res, err := f.svc.UpdateItemQuantity(ctx, "ban1", o.Lines[0].ID, -3)
		require.NoError(t, err)
		assert.Nil(t, res)
	})

	t.Run("No active order", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.UpdateItemQuantity(ctx, "ban1", "line-x", 2)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Unknown line", func(t *testing.T) {
		f := newFixture(t)
		_, _ = f.svc.AddItem(ctx, "ban1", coffee(1))

		_, err := f.svc.UpdateItemQuantity(ctx, "ban1", "line-x", 2)
		assert.ErrorIs(t, err, ErrLineNotFound)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestService_ClearOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes active order", func(t *testing.T) {
		f := newFixture(t)
		_, _ = f.svc.AddItem(ctx, "vip3", coffee(3))

		require.NoError(t, f.svc.ClearOrder(ctx, "vip3"))

		stored, _ := f.repo.GetActiveByTable(ctx, "vip3")
		assert.Nil(t, stored)
		assert.False(t, f.svc.View().IsOccupied("vip3"))
	})

	t.Run("No-op without order", func(t *testing.T) {
		f := newFixture(t)
		assert.NoError(t, f.svc.ClearOrder(ctx, "vip3"))
	})

	t.Run("Storage failure", func(t *testing.T) {
		f := newFixture(t)
		f.svc.repo = &failingRepository{Repository: f.repo, failOn: "GetActiveByTable", err: errors.New("down")}

		assert.ErrorIs(t, f.svc.ClearOrder(ctx, "vip3"), apperr.ErrStorage)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Advances and regresses", func(t *testing.T) {
		f := newFixture(t)
		_, _ = f.svc.AddItem(ctx, "ban2", coffee(1))

		for _, s := range []Status{StatusConfirmed, StatusPreparing, StatusReady, StatusConfirmed} {
			o, err := f.svc.UpdateStatus(ctx, "ban2", s)
			require.NoError(t, err)
			assert.Equal(t, s, o.Status)
		}

		f.notifier.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e notify.Event) bool {
			return e.Type == notify.EventStatusChanged && e.Status == "preparing"
		}))
	})

	t.Run("Direct completion rejected", func(t *testing.T) {
		f := newFixture(t)
		_, _ = f.svc.AddItem(ctx, "ban2", coffee(1))

		_, err := f.svc.UpdateStatus(ctx, "ban2", StatusCompleted)
		assert.ErrorIs(t, err, ErrPaymentRequired)
		assert.ErrorIs(t, err, apperr.ErrValidation)

		_, err = f.svc.UpdateStatus(ctx, "ban2", StatusPaid)
		assert.ErrorIs(t, err, apperr.ErrValidation)

		assert.True(t, f.svc.View().IsOccupied("ban2"))
	})

	t.Run("Unknown status", func(t *testing.T) {
		f := newFixture(t)
		_, _ = f.svc.AddItem(ctx, "ban2", coffee(1))

		_, err := f.svc.UpdateStatus(ctx, "ban2", "cooking")
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("No active order", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.UpdateStatus(ctx, "ban2", StatusReady)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_CompleteWithPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Completes and frees the table", func(t *testing.T) {
		f := newFixture(t)
		o, _ := f.svc.AddItem(ctx, "ban6", coffee(4))
		p := f.pay(t, o)

		done, err := f.svc.CompleteWithPayment(ctx, "ban6", p, Customer{Name: "Minh", Phone: "0903000111"})
		require.NoError(t, err)

		assert.Equal(t, StatusCompleted, done.Status)
		assert.Equal(t, int64(10000), *done.Tax)
		assert.Equal(t, int64(0), *done.Discount)
		assert.Equal(t, "Minh", *done.CustomerName)
		assert.Nil(t, done.Notes)
		assert.False(t, f.svc.View().IsOccupied("ban6"))

		require.Len(t, done.Lines, 1)
		assert.Equal(t, 4, done.Lines[0].Quantity)

		stored, _ := f.repo.GetByID(ctx, o.ID)
		assert.Equal(t, StatusCompleted, stored.Status)
		assert.Equal(t, stored.UpdatedAt, done.UpdatedAt)
	})

	t.Run("Reload failure is reported after completion", func(t *testing.T) {
		f := newFixture(t)
		o, _ := f.svc.AddItem(ctx, "ban6", coffee(1))
		p := f.pay(t, o)
		f.svc.repo = &failingRepository{Repository: f.repo, failOn: "GetByID", err: errors.New("connection reset")}

		done, err := f.svc.CompleteWithPayment(ctx, "ban6", p, Customer{})
		assert.ErrorIs(t, err, apperr.ErrStorage)
		assert.Nil(t, done)

		stored, _ := f.repo.GetByID(ctx, o.ID)
		assert.Equal(t, StatusCompleted, stored.Status)
		assert.False(t, f.svc.View().IsOccupied("ban6"))
	})

	t.Run("Next add opens a new order", func(t *testing.T) {
		f := newFixture(t)
		first, _ := f.svc.AddItem(ctx, "ban6", coffee(1))
		_, err := f.svc.CompleteWithPayment(ctx, "ban6", f.pay(t, first), Customer{})
		require.NoError(t, err)

		second, err := f.svc.AddItem(ctx, "ban6", coffee(1))
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, StatusPending, second.Status)
		assert.Len(t, second.Lines, 1)

		view, err := f.svc.Refresh(ctx)
		require.NoError(t, err)
		active, ok := view.Order("ban6")
		require.True(t, ok)
		assert.Equal(t, second.ID, active.ID)
	})

	t.Run("Unrecorded payment rejected", func(t *testing.T) {
		f := newFixture(t)
		o, _ := f.svc.AddItem(ctx, "ban6", coffee(1))
		p := &payment.Payment{ID: "ghost", OrderID: o.ID, Status: payment.StatusCompleted}

		_, err := f.svc.CompleteWithPayment(ctx, "ban6", p, Customer{})
		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.True(t, f.svc.View().IsOccupied("ban6"))
	})

	t.Run("Payment for another order rejected", func(t *testing.T) {
		f := newFixture(t)
		_, _ = f.svc.AddItem(ctx, "ban6", coffee(1))
		other, _ := f.svc.AddItem(ctx, "ban7", coffee(1))

		_, err := f.svc.CompleteWithPayment(ctx, "ban6", f.pay(t, other), Customer{})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("Missing payment", func(t *testing.T) {
		f := newFixture(t)
		_, _ = f.svc.AddItem(ctx, "ban6", coffee(1))

		_, err := f.svc.CompleteWithPayment(ctx, "ban6", nil, Customer{})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("No active order", func(t *testing.T) {
		f := newFixture(t)
		p := &payment.Payment{ID: "p", OrderID: "o", Status: payment.StatusCompleted}

		_, err := f.svc.CompleteWithPayment(ctx, "ban6", p, Customer{})
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_RefreshAndView(t *testing.T) {
	ctx := context.Background()

	t.Run("Rebuilds from store", func(t *testing.T) {
		f := newFixture(t)
		_, _ = f.svc.AddItem(ctx, "ban1", coffee(2))
		_, _ = f.svc.AddItem(ctx, "takeaway", coffee(1))

		// a second manager over the same store starts empty
		other := NewService(f.repo, table.NewMemoryRepository(table.DefaultLayout()...), f.payments, nil)
		assert.Equal(t, 0, other.View().Len())

		core, observed := observer.New(zapcore.InfoLevel)
		t.Cleanup(logger.Use(zap.New(core)))

		view, err := other.Refresh(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"ban1", "takeaway"}, view.Tables())

		entries := observed.FilterMessage("active orders refreshed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, int64(2), entries[0].ContextMap()["active"])
		assert.Equal(t, 2, view.ItemCount("ban1"))
		assert.Equal(t, 1, other.View().ItemCount("takeaway"))
	})

	t.Run("View is a snapshot", func(t *testing.T) {
		f := newFixture(t)
		_, _ = f.svc.AddItem(ctx, "ban1", coffee(1))

		view := f.svc.View()
		_, _ = f.svc.AddItem(ctx, "ban1", coffee(1))

		assert.Equal(t, 1, view.ItemCount("ban1"))
		assert.Equal(t, 2, f.svc.View().ItemCount("ban1"))
	})

	t.Run("Storage failure", func(t *testing.T) {
		f := newFixture(t)
		f.svc.repo = &failingRepository{Repository: f.repo, failOn: "ListActive", err: errors.New("down")}

		_, err := f.svc.Refresh(ctx)
		assert.ErrorIs(t, err, apperr.ErrStorage)
	})
}
