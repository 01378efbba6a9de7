// Package adaptermock provides testify mocks for the application ports.
package adaptermock

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	"github.com/finance-tracker/pnl/internal/domain/valueobject"
)

// CanonicalRecordRepository mocks adapter.CanonicalRecordRepository.
type CanonicalRecordRepository struct {
	mock.Mock
}

func (m *CanonicalRecordRepository) BulkCreate(ctx context.Context, records []*entity.CanonicalRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *CanonicalRecordRepository) FindForRollup(ctx context.Context, filter adapter.RecordFilter) ([]*entity.CanonicalRecord, error) {
	args := m.Called(ctx, filter)
	records, _ := args.Get(0).([]*entity.CanonicalRecord)
	return records, args.Error(1)
}

func (m *CanonicalRecordRepository) CountByImport(ctx context.Context, tenantID, importID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, importID)
	return args.Get(0).(int64), args.Error(1)
}

// TaxonomyRepository mocks adapter.TaxonomyRepository.
type TaxonomyRepository struct {
	mock.Mock
}

func (m *TaxonomyRepository) Create(ctx context.Context, category *entity.TaxonomyCategory) error {
	return m.Called(ctx, category).Error(0)
}

func (m *TaxonomyRepository) CreateBatch(ctx context.Context, categories []*entity.TaxonomyCategory) error {
	return m.Called(ctx, categories).Error(0)
}

func (m *TaxonomyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TaxonomyCategory, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*entity.TaxonomyCategory)
	return category, args.Error(1)
}

func (m *TaxonomyRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*entity.TaxonomyCategory, error) {
	args := m.Called(ctx, tenantID)
	categories, _ := args.Get(0).([]*entity.TaxonomyCategory)
	return categories, args.Error(1)
}

func (m *TaxonomyRepository) ExistsByNameAndTenant(ctx context.Context, name string, tenantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, tenantID)
	return args.Bool(0), args.Error(1)
}

func (m *TaxonomyRepository) NextPosition(ctx context.Context, tenantID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

func (m *TaxonomyRepository) Update(ctx context.Context, category *entity.TaxonomyCategory) error {
	return m.Called(ctx, category).Error(0)
}

func (m *TaxonomyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// TaxonomySeedSource mocks adapter.TaxonomySeedSource.
type TaxonomySeedSource struct {
	mock.Mock
}

func (m *TaxonomySeedSource) Load(ctx context.Context) ([]adapter.TaxonomySeed, error) {
	args := m.Called(ctx)
	seeds, _ := args.Get(0).([]adapter.TaxonomySeed)
	return seeds, args.Error(1)
}

// MappingConfigRepository mocks adapter.MappingConfigRepository.
type MappingConfigRepository struct {
	mock.Mock
}

func (m *MappingConfigRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*valueobject.TransformConfig, error) {
	args := m.Called(ctx, tenantID)
	cfg, _ := args.Get(0).(*valueobject.TransformConfig)
	return cfg, args.Error(1)
}

func (m *MappingConfigRepository) Upsert(ctx context.Context, tenantID uuid.UUID, cfg valueobject.TransformConfig) error {
	return m.Called(ctx, tenantID, cfg).Error(0)
}

// RollupCache mocks adapter.RollupCache.
type RollupCache struct {
	mock.Mock
}

func (m *RollupCache) Get(ctx context.Context, filter adapter.RecordFilter) (adapter.RollupLookup, error) {
	args := m.Called(ctx, filter)
	lookup, _ := args.Get(0).(adapter.RollupLookup)
	return lookup, args.Error(1)
}

func (m *RollupCache) Set(ctx context.Context, filter adapter.RecordFilter, generation int64, rollup *entity.Rollup) error {
	return m.Called(ctx, filter, generation, rollup).Error(0)
}

func (m *RollupCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	return m.Called(ctx, tenantID).Error(0)
}

// SourceFetcher mocks adapter.SourceFetcher.
type SourceFetcher struct {
	mock.Mock
	Tag entity.Source
}

func (m *SourceFetcher) Source() entity.Source {
	return m.Tag
}

func (m *SourceFetcher) Fetch(ctx context.Context, tenantID uuid.UUID) ([]entity.RawRecord, error) {
	args := m.Called(ctx, tenantID)
	rows, _ := args.Get(0).([]entity.RawRecord)
	return rows, args.Error(1)
}

// RowParser mocks adapter.RowParser.
type RowParser struct {
	mock.Mock
}

func (m *RowParser) Parse(ctx context.Context, r io.Reader, opts adapter.ParseOptions) ([]entity.RawRecord, error) {
	args := m.Called(ctx, r, opts)
	rows, _ := args.Get(0).([]entity.RawRecord)
	return rows, args.Error(1)
}

// TokenService mocks adapter.TokenService.
type TokenService struct {
	mock.Mock
}

func (m *TokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*adapter.TokenClaims)
	return claims, args.Error(1)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) ObserveImport(entity.Source, int, int, time.Duration)  {}
func (NopMetrics) ObserveSkippedRow(entity.Source, string)               {}
func (NopMetrics) ObserveSourceFetch(entity.Source, bool, time.Duration) {}
func (NopMetrics) ObserveRollup(bool, int, time.Duration)                {}

var (
	_ adapter.CanonicalRecordRepository = (*CanonicalRecordRepository)(nil)
	_ adapter.TaxonomyRepository        = (*TaxonomyRepository)(nil)
	_ adapter.TaxonomySeedSource        = (*TaxonomySeedSource)(nil)
	_ adapter.MappingConfigRepository   = (*MappingConfigRepository)(nil)
	_ adapter.RollupCache               = (*RollupCache)(nil)
	_ adapter.SourceFetcher             = (*SourceFetcher)(nil)
	_ adapter.RowParser                 = (*RowParser)(nil)
	_ adapter.TokenService              = (*TokenService)(nil)
	_ adapter.ImportMetrics             = NopMetrics{}
)
