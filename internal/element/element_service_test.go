package element_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/element"
	elementerrors "go-payroll/internal/element/errors"
	elementMock "go-payroll/internal/element/mock"
	"go-payroll/internal/paycalc"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	repo      *elementMock.MockRepository
	redismock redismock.ClientMock
	service   element.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, redisMock := redismock.NewClientMock()
	repo := elementMock.NewMockRepository(ctrl)
	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      repo,
		redismock: redisMock,
		service:   element.NewService(db, repo, rdb, zap.NewNop()),
	}
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func expectInvalidate(m redismock.ClientMock) {
	m.ExpectDel("elements:all:ALL", "elements:all:GAIN", "elements:all:DEDUCTION").SetVal(1)
}

func TestElementService_GetAll(t *testing.T) {
	ctx := context.Background()
	cacheKey := element.GetCatalogueKey("GAIN")

	t.Run("cache hit", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached := []element.ElementResponse{{ID: uuid.NewString(), Name: "Transport", Kind: "GAIN"}}
		raw, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(cacheKey).SetVal(string(raw))

		resp, err := deps.service.GetAll(ctx, "gain")

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Transport", resp[0].Name)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		rows := []element.Element{{ID: id, Name: "Transport", Kind: paycalc.KindGain, Amount: money("1000"), ZoneSensitive: true}}

		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx, "GAIN").Return(rows, nil).Times(1)

		expected, _ := json.Marshal([]element.ElementResponse{{
			ID: id.String(), Name: "Transport", Kind: "GAIN", Amount: money("1000"), ZoneSensitive: true,
		}})
		deps.redismock.ExpectSet(cacheKey, expected, 30*time.Minute).SetVal("OK")

		resp, err := deps.service.GetAll(ctx, "GAIN")

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.True(t, resp[0].ZoneSensitive)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx, "GAIN").Return(nil, errors.New("db down"))

		_, err := deps.service.GetAll(ctx, "GAIN")

		assert.EqualError(t, err, "db down")
	})

	t.Run("invalid kind", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetAll(ctx, "BONUS")

		assert.ErrorIs(t, err, elementerrors.ErrInvalidKind)
	})
}

func TestElementService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates catalogue", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *element.Element) error {
			assert.Equal(t, paycalc.KindDeduction, e.Kind)
			assert.Nil(t, e.Amount)
			return nil
		})
		expectInvalidate(deps.redismock)

		resp, err := deps.service.Create(ctx, element.CreateElementRequest{Name: "Union fee", Kind: "deduction"})

		assert.NoError(t, err)
		assert.Equal(t, "DEDUCTION", resp.Kind)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("negative amount", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, element.CreateElementRequest{Name: "X", Kind: "GAIN", Amount: money("-1")})

		assert.ErrorIs(t, err, elementerrors.ErrNegativeAmount)
	})

	t.Run("duplicate name", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: element.NameConstraint,
		})

		_, err := deps.service.Create(ctx, element.CreateElementRequest{Name: "Transport", Kind: "GAIN"})

		assert.ErrorIs(t, err, elementerrors.ErrElementNameExists)
	})
}

func TestElementService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("clear amount", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&element.Element{
			ID: id, Name: "Transport", Kind: paycalc.KindGain, Amount: money("1000"),
		}, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		expectInvalidate(deps.redismock)

		resp, err := deps.service.Update(ctx, id.String(), element.UpdateElementRequest{ClearAmount: true})

		assert.NoError(t, err)
		assert.Nil(t, resp.Amount)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, id.String(), element.UpdateElementRequest{})

		assert.ErrorIs(t, err, elementerrors.ErrElementNotFound)
	})
}

func TestElementService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, id).Return(nil)
		expectInvalidate(deps.redismock)

		assert.NoError(t, deps.service.Delete(ctx, id))
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		assert.ErrorIs(t, deps.service.Delete(ctx, "nope"), elementerrors.ErrInvalidElementID)
	})
}

func TestElement_ToPaycalc(t *testing.T) {
	id := uuid.New()
	e := element.Element{ID: id, Name: "Risk", Kind: paycalc.KindGain, ZoneSensitive: true}

	pe := e.ToPaycalc()

	assert.Equal(t, id.String(), pe.ID)
	assert.True(t, pe.BaseAmount().IsZero())
	assert.True(t, pe.ZoneSensitive)
}
