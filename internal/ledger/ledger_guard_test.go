package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/ledger"
	ledgererrors "go-payroll/internal/ledger/errors"
	"go-payroll/internal/paycalc"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeFinder struct {
	payments []ledger.Payment
	err      error
}

func (f *fakeFinder) FindPaymentForMonth(_ context.Context, employeeID string, period paycalc.Period, excludeID string) (*ledger.Payment, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.payments {
		p := f.payments[i]
		if p.EmployeeID.String() != employeeID || p.PeriodKey != period.Key() || !p.Active() {
			continue
		}
		if excludeID != "" && p.ID.String() == excludeID {
			continue
		}
		return &p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func payment(employeeID uuid.UUID, date time.Time, amount, status string) ledger.Payment {
	return ledger.Payment{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		Amount:      money(amount),
		PaymentDate: date,
		PeriodKey:   paycalc.PeriodOf(date).Key(),
		Status:      status,
	}
}

func TestConsistencyGuard_BeforeCreatePayment(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	tests := []struct {
		name     string
		existing []ledger.Payment
		date     time.Time
		wantErr  error
	}{
		{
			name: "no payment in month",
			date: day(2024, time.March, 10),
		},
		{
			name:     "pending payment same month",
			existing: []ledger.Payment{payment(employeeID, day(2024, time.March, 1), "1000", ledger.StatusPending)},
			date:     day(2024, time.March, 28),
			wantErr:  ledgererrors.ErrDuplicateActivePayment,
		},
		{
			name:     "completed payment same month",
			existing: []ledger.Payment{payment(employeeID, day(2024, time.March, 1), "1000", ledger.StatusCompleted)},
			date:     day(2024, time.March, 31),
			wantErr:  ledgererrors.ErrDuplicateActivePayment,
		},
		{
			name:     "cancelled payment is ignored",
			existing: []ledger.Payment{payment(employeeID, day(2024, time.March, 1), "1000", ledger.StatusCancelled)},
			date:     day(2024, time.March, 15),
		},
		{
			name:     "same day of another month",
			existing: []ledger.Payment{payment(employeeID, day(2024, time.February, 15), "1000", ledger.StatusPending)},
			date:     day(2024, time.March, 15),
		},
		{
			name:     "same month of another year",
			existing: []ledger.Payment{payment(employeeID, day(2023, time.March, 15), "1000", ledger.StatusCompleted)},
			date:     day(2024, time.March, 15),
		},
		{
			name:     "another employee",
			existing: []ledger.Payment{payment(uuid.New(), day(2024, time.March, 1), "1000", ledger.StatusPending)},
			date:     day(2024, time.March, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := ledger.NewConsistencyGuard(&fakeFinder{payments: tt.existing}, zap.NewNop())

			err := guard.BeforeCreatePayment(ctx, employeeID.String(), tt.date)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConsistencyGuard_BeforeUpdatePayment(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	march := payment(employeeID, day(2024, time.March, 1), "1000", ledger.StatusPending)
	april := payment(employeeID, day(2024, time.April, 1), "1000", ledger.StatusPending)
	guard := ledger.NewConsistencyGuard(&fakeFinder{payments: []ledger.Payment{march, april}}, nil)

	assert.NoError(t, guard.BeforeUpdatePayment(ctx, march.ID.String(), employeeID.String(), day(2024, time.March, 20)))
	assert.ErrorIs(t,
		guard.BeforeUpdatePayment(ctx, march.ID.String(), employeeID.String(), day(2024, time.April, 20)),
		ledgererrors.ErrDuplicateActivePayment,
	)
}

func TestConsistencyGuard_BeforeCreateDebt(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	date := day(2024, time.March, 20)

	t.Run("no payment creates debt only", func(t *testing.T) {
		guard := ledger.NewConsistencyGuard(&fakeFinder{}, nil)

		action, err := guard.BeforeCreateDebt(ctx, employeeID.String(), money("300"), date)

		require.NoError(t, err)
		assert.Equal(t, ledger.CreateDebtOnly, action.Kind)
		assert.Nil(t, action.Payment)
	})

	t.Run("pending payment is reduced", func(t *testing.T) {
		pending := payment(employeeID, day(2024, time.March, 1), "1000", ledger.StatusPending)
		guard := ledger.NewConsistencyGuard(&fakeFinder{payments: []ledger.Payment{pending}}, nil)

		action, err := guard.BeforeCreateDebt(ctx, employeeID.String(), money("300"), date)

		require.NoError(t, err)
		assert.Equal(t, ledger.ReduceExistingPayment, action.Kind)
		assert.Equal(t, pending.ID, action.Payment.ID)
		assert.True(t, action.NewAmount.Equal(money("700")), action.NewAmount.String())
	})

	t.Run("reduction floors at zero", func(t *testing.T) {
		pending := payment(employeeID, day(2024, time.March, 1), "1000", ledger.StatusPending)
		guard := ledger.NewConsistencyGuard(&fakeFinder{payments: []ledger.Payment{pending}}, nil)

		action, err := guard.BeforeCreateDebt(ctx, employeeID.String(), money("1500"), date)

		require.NoError(t, err)
		assert.True(t, action.NewAmount.IsZero())
	})

	t.Run("completed payment rejects debt", func(t *testing.T) {
		completed := payment(employeeID, day(2024, time.March, 1), "1000", ledger.StatusCompleted)
		guard := ledger.NewConsistencyGuard(&fakeFinder{payments: []ledger.Payment{completed}}, nil)

		_, err := guard.BeforeCreateDebt(ctx, employeeID.String(), money("300"), date)

		assert.ErrorIs(t, err, ledgererrors.ErrCompletedPaymentExists)
	})

	t.Run("cancelled payment is invisible", func(t *testing.T) {
		cancelled := payment(employeeID, day(2024, time.March, 1), "1000", ledger.StatusCancelled)
		guard := ledger.NewConsistencyGuard(&fakeFinder{payments: []ledger.Payment{cancelled}}, nil)

		action, err := guard.BeforeCreateDebt(ctx, employeeID.String(), money("300"), date)

		require.NoError(t, err)
		assert.Equal(t, ledger.CreateDebtOnly, action.Kind)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		guard := ledger.NewConsistencyGuard(&fakeFinder{err: errors.New("db down")}, nil)

		_, err := guard.BeforeCreateDebt(ctx, employeeID.String(), money("300"), date)

		assert.EqualError(t, err, "db down")
	})
}
