package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
	"github.com/finance-tracker/pnl/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return db
}

func newRecord(tenantID uuid.UUID, date time.Time, amount string, dataType entity.DataType, path ...string) *entity.CanonicalRecord {
	return &entity.CanonicalRecord{
		ID:           uuid.New(),
		TenantID:     tenantID,
		ImportID:     uuid.New(),
		Name:         "record",
		Date:         date,
		Amount:       decimal.RequireFromString(amount),
		Source:       entity.SourceCSV,
		DataType:     dataType,
		CategoryID:   entity.UncategorizedID,
		CategoryPath: path,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestCanonicalRecordRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewCanonicalRecordRepository(db, 2)

	tenantID := uuid.New()
	otherTenant := uuid.New()
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	records := []*entity.CanonicalRecord{
		newRecord(tenantID, jan, "1500", entity.DataTypeActual, "Revenue"),
		newRecord(tenantID, jan, "200", entity.DataTypeActual, "Expenses", "", "Acme"),
		newRecord(tenantID, jan, "99", entity.DataTypeBudget, "Expenses"),
		newRecord(tenantID, feb, "7", entity.DataTypeActual, "Expenses"),
		newRecord(otherTenant, jan, "1000000", entity.DataTypeActual, "Revenue"),
	}
	require.NoError(t, repo.BulkCreate(ctx, records))

	t.Run("filters by tenant range and data type", func(t *testing.T) {
		found, err := repo.FindForRollup(ctx, adapter.RecordFilter{
			TenantID:  tenantID,
			DateRange: valueobject.DateRange{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)}.ThroughEndOfDay(),
			DataTypes: []entity.DataType{entity.DataTypeActual},
		})

		require.NoError(t, err)
		require.Len(t, found, 2)
		for _, r := range found {
			assert.Equal(t, tenantID, r.TenantID)
			assert.Equal(t, entity.DataTypeActual, r.DataType)
		}
	})

	t.Run("round-trips category path with gaps", func(t *testing.T) {
		found, err := repo.FindForRollup(ctx, adapter.RecordFilter{TenantID: tenantID})

		require.NoError(t, err)
		require.Len(t, found, 4)

		var gapped *entity.CanonicalRecord
		for _, r := range found {
			if r.ID == records[1].ID {
				gapped = r
			}
		}
		require.NotNil(t, gapped)
		assert.Equal(t, []string{"Expenses", "", "Acme"}, gapped.CategoryPath)
		assert.True(t, gapped.Amount.Equal(decimal.NewFromInt(200)))
		assert.True(t, gapped.Date.Equal(jan))
	})

	t.Run("counts by import", func(t *testing.T) {
		count, err := repo.CountByImport(ctx, tenantID, records[0].ImportID)

		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("existing ids are skipped", func(t *testing.T) {
		dup := newRecord(tenantID, jan, "1", entity.DataTypeActual, "Revenue")
		fresh := newRecord(tenantID, jan, "1", entity.DataTypeActual, "Revenue")
		dup.ID = records[0].ID
		dup.ImportID = fresh.ImportID

		require.NoError(t, repo.BulkCreate(ctx, []*entity.CanonicalRecord{fresh, dup}))

		count, err := repo.CountByImport(ctx, tenantID, fresh.ImportID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		original, err := repo.CountByImport(ctx, tenantID, records[0].ImportID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), original)

		stored, err := repo.FindForRollup(ctx, adapter.RecordFilter{TenantID: tenantID})
		require.NoError(t, err)
		for _, r := range stored {
			if r.ID == records[0].ID {
				assert.True(t, r.Amount.Equal(records[0].Amount), "a re-delivered amount must not overwrite the stored row")
			}
		}
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.BulkCreate(ctx, nil))
	})
}

func TestTaxonomyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTaxonomyRepository(newTestDB(t))
	tenantID := uuid.New()

	position, err := repo.NextPosition(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, 0, position)

	rent := entity.NewTaxonomyCategory(tenantID, "Rent", []string{"rent", "lease"}, entity.SectionExpenses, 1)
	consulting := entity.NewTaxonomyCategory(tenantID, "Consulting", []string{"consult"}, entity.SectionRevenue, 0)
	require.NoError(t, repo.CreateBatch(ctx, []*entity.TaxonomyCategory{rent, consulting}))
	require.NoError(t, repo.Create(ctx, entity.NewTaxonomyCategory(uuid.New(), "Rent", nil, "", 0)))

	t.Run("lists in position order", func(t *testing.T) {
		found, err := repo.FindByTenant(ctx, tenantID)

		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "Consulting", found[0].Name)
		assert.Equal(t, []string{"rent", "lease"}, found[1].Keywords)
	})

	t.Run("name existence is case-insensitive and tenant scoped", func(t *testing.T) {
		exists, err := repo.ExistsByNameAndTenant(ctx, "RENT", tenantID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByNameAndTenant(ctx, "Payroll", tenantID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("next position follows the highest", func(t *testing.T) {
		position, err := repo.NextPosition(ctx, tenantID)
		require.NoError(t, err)
		assert.Equal(t, 2, position)
	})

	t.Run("update and delete", func(t *testing.T) {
		rent.Keywords = []string{"landlord"}
		require.NoError(t, repo.Update(ctx, rent))

		found, err := repo.FindByID(ctx, rent.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"landlord"}, found.Keywords)

		require.NoError(t, repo.Delete(ctx, rent.ID))
		_, err = repo.FindByID(ctx, rent.ID)
		assert.ErrorIs(t, err, domainerror.ErrTaxonomyCategoryNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, rent.ID), domainerror.ErrTaxonomyCategoryNotFound)
	})
}

func TestMappingConfigRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMappingConfigRepository(newTestDB(t))
	tenantID := uuid.New()

	_, err := repo.FindByTenant(ctx, tenantID)
	require.ErrorIs(t, err, domainerror.ErrMappingConfigNotFound)

	first := valueobject.TransformConfig{
		Section:            entity.SectionRevenue,
		SectionMappingType: valueobject.SectionMappingStatic,
	}
	require.NoError(t, repo.Upsert(ctx, tenantID, first))

	second := valueobject.TransformConfig{
		Section:            entity.SectionExpenses,
		SectionMappingType: valueobject.SectionMappingColumn,
		SectionColumn:      "Type",
		HierarchyMappings: []valueobject.HierarchyMapping{
			{SourceColumn: "Dept", Level: 2},
			{SourceColumn: "Vendor", Level: 3},
		},
	}
	require.NoError(t, repo.Upsert(ctx, tenantID, second))

	found, err := repo.FindByTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, second, *found)
}
