package employee_test

import (
	"context"
	"testing"

	"go-payroll/internal/employee"

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

	require.NoError(t, db.AutoMigrate(&employee.Employee{}))
	require.NoError(t, db.Exec(`CREATE TABLE grades (id TEXT PRIMARY KEY)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE workplaces (id TEXT PRIMARY KEY)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE payslips (id TEXT PRIMARY KEY, employee_id TEXT)`).Error)
	return db
}

func TestEmployeeRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	db := setupRepoDB(t)
	repo := employee.NewRepository(db)

	gradeID := uuid.New()
	workplaceID := uuid.New()
	seed := []employee.Employee{
		{ID: uuid.New(), Matricule: "MAT-000001", FirstName: "Amani", LastName: "Kabila", GradeID: gradeID, WorkplaceID: &workplaceID},
		{ID: uuid.New(), Matricule: "MAT-000002", FirstName: "Bora", LastName: "Ilunga", GradeID: gradeID},
		{ID: uuid.New(), Matricule: "MAT-000003", FirstName: "Chiku", LastName: "Kasongo", GradeID: gradeID, WorkplaceID: &workplaceID},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	t.Run("search by name", func(t *testing.T) {
		rows, total, err := repo.FindAll(ctx, employee.EmployeeFilter{Search: "KA", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, "Kabila", rows[0].LastName)
		assert.Equal(t, "Kasongo", rows[1].LastName)
	})

	t.Run("search by matricule", func(t *testing.T) {
		rows, total, err := repo.FindAll(ctx, employee.EmployeeFilter{Search: "000002", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Bora", rows[0].FirstName)
	})

	t.Run("filter by workplace with paging", func(t *testing.T) {
		rows, total, err := repo.FindAll(ctx, employee.EmployeeFilter{WorkplaceID: workplaceID.String(), Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, rows, 1)
		assert.Equal(t, "Kasongo", rows[0].LastName)
	})
}

func TestEmployeeRepository_References(t *testing.T) {
	ctx := context.Background()
	db := setupRepoDB(t)
	repo := employee.NewRepository(db)

	gradeID := uuid.NewString()
	require.NoError(t, db.Exec(`INSERT INTO grades (id) VALUES (?)`, gradeID).Error)

	ok, err := repo.GradeExists(ctx, gradeID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.WorkplaceExists(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)

	err = repo.Delete(ctx, uuid.NewString())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
