package payroll_test

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/payroll"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&payroll.PayrollGrade{},
		&payroll.PayrollWorkplace{},
		&payroll.PayrollEmployee{},
		&payroll.PayrollElement{},
		&payroll.Payslip{},
		&payroll.PayslipLine{},
	))
	return db
}

func seedPayslip(t *testing.T, repo payroll.Repository, employeeID uuid.UUID, period string, month int) *payroll.Payslip {
	id := uuid.New()
	p := &payroll.Payslip{
		ID:          id,
		EmployeeID:  employeeID,
		Month:       month,
		Year:        2024,
		PeriodKey:   period,
		BaseSalary:  money("300000"),
		Gross:       money("300000"),
		Net:         money("250000"),
		Zone:        "URBAN",
		Status:      payroll.StatusPending,
		GeneratedAt: time.Now().UTC(),
		Lines: []payroll.PayslipLine{
			{ID: uuid.New(), PayslipID: id, Kind: "TAX", Position: 1, Amount: money("40000"), Description: "Income tax"},
			{ID: uuid.New(), PayslipID: id, Kind: "CONTRIBUTION", Position: 0, Amount: money("9000"), Description: "Social contribution (5%)"},
		},
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestPayrollRepository_Payslips(t *testing.T) {
	ctx := context.Background()
	db := setupRepoDB(t)
	repo := payroll.NewRepository(db)
	employeeID := uuid.New()

	jan := seedPayslip(t, repo, employeeID, "2024-01", 1)
	mar := seedPayslip(t, repo, employeeID, "2024-03", 3)
	seedPayslip(t, repo, uuid.New(), "2024-02", 2)

	t.Run("ordered by period desc", func(t *testing.T) {
		all, err := repo.FindAll(ctx, payroll.PayslipFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "2024-03", all[0].PeriodKey)
		assert.Equal(t, "2024-02", all[1].PeriodKey)
		assert.Equal(t, "2024-01", all[2].PeriodKey)
	})

	t.Run("filter by employee and month", func(t *testing.T) {
		rows, err := repo.FindAll(ctx, payroll.PayslipFilter{EmployeeID: employeeID.String(), Month: 1})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, jan.ID, rows[0].ID)
	})

	t.Run("lines in position order", func(t *testing.T) {
		p, err := repo.FindByID(ctx, mar.ID.String())
		require.NoError(t, err)
		require.Len(t, p.Lines, 2)
		assert.Equal(t, "CONTRIBUTION", p.Lines[0].Kind)
		assert.Equal(t, "TAX", p.Lines[1].Kind)
		assert.True(t, p.Lines[0].Amount.Equal(money("9000")))
	})

	t.Run("update payment", func(t *testing.T) {
		paidAt := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
		require.NoError(t, repo.UpdatePayment(ctx, mar.ID.String(), "CASH", paidAt))

		p, err := repo.LockByID(ctx, mar.ID.String())
		require.NoError(t, err)
		assert.Equal(t, payroll.StatusPaid, p.Status)
		assert.Equal(t, "CASH", *p.PaymentMethod)
		assert.True(t, p.PaidAt.Equal(paidAt))

		paid, err := repo.FindAll(ctx, payroll.PayslipFilter{Status: payroll.StatusPaid})
		require.NoError(t, err)
		assert.Len(t, paid, 1)
	})

	t.Run("delete cascades to lines", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, jan.ID.String()))

		var count int64
		require.NoError(t, db.Model(&payroll.PayslipLine{}).Where("payslip_id = ?", jan.ID.String()).Count(&count).Error)
		assert.Zero(t, count)

		_, err := repo.FindByID(ctx, jan.ID.String())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, jan.ID.String()), gorm.ErrRecordNotFound)
	})
}

func TestPayrollRepository_Source(t *testing.T) {
	ctx := context.Background()
	db := setupRepoDB(t)
	repo := payroll.NewRepository(db)

	gradeID := uuid.New()
	employeeID := uuid.New()
	a, b := uuid.New(), uuid.New()
	require.NoError(t, db.Create(&payroll.PayrollGrade{ID: gradeID, Label: "P1", BaseSalary: money("300000")}).Error)
	require.NoError(t, db.Create(&payroll.PayrollEmployee{ID: employeeID, FirstName: "A", LastName: "B", GradeID: gradeID}).Error)
	require.NoError(t, db.Create(&payroll.PayrollElement{ID: a, Name: "A", Kind: "GAIN", Amount: moneyPtr("10")}).Error)
	require.NoError(t, db.Create(&payroll.PayrollElement{ID: b, Name: "B", Kind: "DEDUCTION"}).Error)

	emp, err := repo.FindEmployee(ctx, employeeID.String())
	require.NoError(t, err)
	assert.Nil(t, emp.WorkplaceID)

	grade, err := repo.FindGrade(ctx, emp.GradeID.String())
	require.NoError(t, err)
	assert.True(t, grade.BaseSalary.Equal(money("300000")))

	elements, err := repo.FindElements(ctx, []string{a.String(), b.String(), uuid.NewString()})
	require.NoError(t, err)
	assert.Len(t, elements, 2)

	_, err = repo.FindWorkplace(ctx, uuid.NewString())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
