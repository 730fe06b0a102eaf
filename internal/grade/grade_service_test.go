package grade_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-payroll/internal/grade"
	gradeerrors "go-payroll/internal/grade/errors"
	gradeMock "go-payroll/internal/grade/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *gradeMock.MockRepository
	service grade.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := gradeMock.NewMockRepository(ctrl)
	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		repo:    repo,
		service: grade.NewService(db, repo, zap.NewNop()),
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestGradeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, g *grade.Grade) error {
			assert.Equal(t, "P1", g.Label)
			assert.True(t, g.BaseSalary.Equal(decimal.NewFromInt(300000)))
			assert.NotEqual(t, uuid.Nil, g.ID)
			return nil
		})

		resp, err := deps.service.Create(ctx, grade.CreateGradeRequest{Label: "  P1 ", BaseSalary: money("300000")})

		assert.NoError(t, err)
		assert.Equal(t, "P1", resp.Label)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative base salary is rejected before any transaction", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, grade.CreateGradeRequest{Label: "P1", BaseSalary: money("-1")})

		assert.ErrorIs(t, err, gradeerrors.ErrInvalidBaseSalary)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate label -> conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505", ConstraintName: grade.LabelConstraint})

		_, err := deps.service.Create(ctx, grade.CreateGradeRequest{Label: "P1", BaseSalary: money("1")})

		assert.ErrorIs(t, err, gradeerrors.ErrGradeLabelExists)
	})
}

func TestGradeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, id)
		assert.ErrorIs(t, err, gradeerrors.ErrGradeNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, gradeerrors.ErrInvalidGradeID)
	})
}

func TestGradeService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("patch only touches provided fields", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		existing := &grade.Grade{ID: id, Label: "P1", BaseSalary: decimal.NewFromInt(100), Description: "first"}
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(existing, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, g *grade.Grade) error {
			assert.Equal(t, "P1", g.Label)
			assert.Equal(t, "first", g.Description)
			assert.True(t, g.BaseSalary.Equal(decimal.NewFromInt(250)))
			return nil
		})

		resp, err := deps.service.Update(ctx, id.String(), grade.UpdateGradeRequest{BaseSalary: money("250")})
		assert.NoError(t, err)
		assert.True(t, resp.BaseSalary.Equal(decimal.NewFromInt(250)))
	})

	t.Run("invalid patch rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		blank := "  "
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&grade.Grade{ID: id, Label: "P1"}, nil)

		_, err := deps.service.Update(ctx, id.String(), grade.UpdateGradeRequest{Label: &blank})
		assert.ErrorIs(t, err, gradeerrors.ErrLabelRequired)
	})
}

func TestGradeService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	t.Run("rejected while assigned", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CountEmployees(ctx, id).Return(int64(2), nil)

		err := deps.service.Delete(ctx, id)
		assert.ErrorIs(t, err, gradeerrors.ErrGradeInUse)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CountEmployees(ctx, id).Return(int64(0), nil)
		deps.repo.EXPECT().Delete(ctx, id).Return(nil)

		assert.NoError(t, deps.service.Delete(ctx, id))
	})

	t.Run("count error", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CountEmployees(ctx, id).Return(int64(0), errors.New("db down"))

		assert.EqualError(t, deps.service.Delete(ctx, id), "db down")
	})
}
