package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finance-tracker/pnl/internal/application/adapter"
	"github.com/finance-tracker/pnl/internal/application/adapter/adaptermock"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
)

type GetProfitAndLossTestSuite struct {
	suite.Suite
	ctx        context.Context
	tenantID   uuid.UUID
	recordRepo *adaptermock.CanonicalRecordRepository
	cache      *adaptermock.RollupCache
	useCase    *GetProfitAndLossUseCase
}

func TestGetProfitAndLossSuite(t *testing.T) {
	suite.Run(t, new(GetProfitAndLossTestSuite))
}

func (s *GetProfitAndLossTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.tenantID = uuid.New()
	s.recordRepo = new(adaptermock.CanonicalRecordRepository)
	s.cache = new(adaptermock.RollupCache)
	s.useCase = NewGetProfitAndLossUseCase(s.recordRepo, s.cache, adaptermock.NopMetrics{}, 4)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *GetProfitAndLossTestSuite) TestAggregatesOnCacheMiss() {
	records := []*entity.CanonicalRecord{
		{Date: day(2024, 1, 5), Amount: decimal.NewFromInt(1500), DataType: entity.DataTypeActual, CategoryPath: []string{"Revenue"}},
		{Date: day(2024, 1, 31).Add(20 * time.Hour), Amount: decimal.NewFromInt(200), DataType: entity.DataTypeActual, CategoryPath: []string{"Expenses", "Software"}},
	}

	var filter adapter.RecordFilter
	s.cache.On("Get", s.ctx, mock.Anything).Return(adapter.RollupLookup{Generation: 7}, nil)
	s.recordRepo.On("FindForRollup", s.ctx, mock.Anything).
		Run(func(args mock.Arguments) { filter = args.Get(1).(adapter.RecordFilter) }).
		Return(records, nil)
	s.cache.On("Set", s.ctx, mock.Anything, int64(7), mock.Anything).Return(nil)

	out, err := s.useCase.Execute(s.ctx, GetProfitAndLossInput{
		TenantID:  s.tenantID,
		StartDate: day(2024, 1, 1),
		EndDate:   day(2024, 1, 31),
	})

	s.Require().NoError(err)
	s.False(out.Cached)
	s.True(out.Revenue.Total.Equal(decimal.NewFromInt(1500)))
	s.True(out.Expenses.Total.Equal(decimal.NewFromInt(200)))
	s.True(out.Expenses.Children["Software"].Total.Equal(decimal.NewFromInt(200)))
	s.True(out.NetIncome.Equal(decimal.NewFromInt(1300)))
	s.Equal("Jan 2024", out.PeriodLabel)
	s.Equal([]entity.DataType{entity.DataTypeActual}, out.DataTypes)

	s.Equal(s.tenantID, filter.TenantID)
	s.Equal(day(2024, 2, 1).Add(-time.Nanosecond), filter.DateRange.End)
	s.cache.AssertCalled(s.T(), "Set", s.ctx, filter, int64(7), mock.Anything)
}

func (s *GetProfitAndLossTestSuite) TestServesFromCache() {
	cached := entity.NewRollup()
	cached.Revenue.Total = decimal.NewFromInt(10)
	s.cache.On("Get", s.ctx, mock.Anything).Return(adapter.RollupLookup{Rollup: cached, Hit: true}, nil)

	out, err := s.useCase.Execute(s.ctx, GetProfitAndLossInput{
		TenantID:  s.tenantID,
		StartDate: day(2024, 1, 1),
		EndDate:   day(2024, 3, 31),
		DataTypes: []entity.DataType{entity.DataTypeBudget},
	})

	s.Require().NoError(err)
	s.True(out.Cached)
	s.True(out.NetIncome.Equal(decimal.NewFromInt(10)))
	s.Equal("Q1 2024", out.PeriodLabel)
	s.recordRepo.AssertNotCalled(s.T(), "FindForRollup", mock.Anything, mock.Anything)
}

func (s *GetProfitAndLossTestSuite) TestCacheErrorFallsBackToDatabase() {
	s.cache.On("Get", s.ctx, mock.Anything).Return(adapter.RollupLookup{}, errors.New("redis down"))
	s.recordRepo.On("FindForRollup", s.ctx, mock.Anything).Return([]*entity.CanonicalRecord{}, nil)

	out, err := s.useCase.Execute(s.ctx, GetProfitAndLossInput{
		TenantID:  s.tenantID,
		StartDate: day(2024, 1, 1),
		EndDate:   day(2024, 12, 31),
	})

	s.Require().NoError(err)
	s.True(out.NetIncome.IsZero())
	s.Equal("FY 2024", out.PeriodLabel)
	s.False(out.Cached)
	s.cache.AssertNotCalled(s.T(), "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *GetProfitAndLossTestSuite) TestValidation() {
	tests := []struct {
		name     string
		input    GetProfitAndLossInput
		expected domainerror.ReportErrorCode
	}{
		{name: "missing start", input: GetProfitAndLossInput{EndDate: day(2024, 1, 1)}, expected: domainerror.ErrCodeMissingStartDate},
		{name: "missing end", input: GetProfitAndLossInput{StartDate: day(2024, 1, 1)}, expected: domainerror.ErrCodeMissingEndDate},
		{name: "end before start", input: GetProfitAndLossInput{StartDate: day(2024, 2, 1), EndDate: day(2024, 1, 1)}, expected: domainerror.ErrCodeInvalidDateRange},
		{
			name:     "unknown data type",
			input:    GetProfitAndLossInput{StartDate: day(2024, 1, 1), EndDate: day(2024, 1, 2), DataTypes: []entity.DataType{"wishful"}},
			expected: domainerror.ErrCodeInvalidDataFilter,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.useCase.Execute(s.ctx, tt.input)

			var reportErr *domainerror.ReportError
			s.Require().True(errors.As(err, &reportErr), "expected ReportError, got %v", err)
			s.Equal(tt.expected, reportErr.Code)
		})
	}
}

func TestPeriodLabel(t *testing.T) {
	tests := []struct {
		start, end time.Time
		expected   string
	}{
		{day(2024, 3, 1), day(2024, 3, 31), "Mar 2024"},
		{day(2024, 4, 1), day(2024, 6, 30), "Q2 2024"},
		{day(2024, 1, 1), day(2024, 12, 31), "FY 2024"},
		{day(2024, 2, 1), day(2024, 5, 31), "Feb 2024 - May 2024"},
		{day(2023, 11, 1), day(2024, 1, 31), "Nov 2023 - Jan 2024"},
	}

	for _, tt := range tests {
		if got := periodLabel(tt.start, tt.end); got != tt.expected {
			t.Errorf("periodLabel(%s, %s) = %q, expected %q", tt.start.Format("2006-01-02"), tt.end.Format("2006-01-02"), got, tt.expected)
		}
	}
}
