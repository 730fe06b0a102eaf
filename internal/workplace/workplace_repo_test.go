package workplace_test

import (
	"context"
	"testing"

	"go-payroll/internal/paycalc"
	"go-payroll/internal/workplace"

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

	require.NoError(t, db.AutoMigrate(&workplace.Workplace{}))
	require.NoError(t, db.Exec(`CREATE TABLE employees (id TEXT PRIMARY KEY, workplace_id TEXT)`).Error)
	return db
}

func TestWorkplaceRepository(t *testing.T) {
	ctx := context.Background()
	db := setupRepoDB(t)
	repo := workplace.NewRepository(db)

	urban := &workplace.Workplace{ID: uuid.New(), Name: "B-Urban", Zone: paycalc.ZoneUrban}
	rural := &workplace.Workplace{ID: uuid.New(), Name: "A-Rural", Zone: paycalc.ZoneRural}
	require.NoError(t, repo.Create(ctx, urban))
	require.NoError(t, repo.Create(ctx, rural))

	all, err := repo.FindAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A-Rural", all[0].Name)

	onlyRural, err := repo.FindAll(ctx, "RURAL")
	require.NoError(t, err)
	require.Len(t, onlyRural, 1)
	assert.Equal(t, rural.ID, onlyRural[0].ID)

	require.NoError(t, db.Exec(`INSERT INTO employees (id, workplace_id) VALUES (?, ?)`, uuid.NewString(), urban.ID.String()).Error)
	count, err := repo.CountEmployees(ctx, urban.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Delete(ctx, rural.ID.String()))
	err = repo.Delete(ctx, rural.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
