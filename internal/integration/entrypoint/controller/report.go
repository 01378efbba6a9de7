package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/pnl/internal/application/usecase/report"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
	"github.com/finance-tracker/pnl/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/pnl/internal/integration/entrypoint/middleware"
)

const dateLayout = "2006-01-02"

// ReportController handles P&L report endpoints.
type ReportController struct {
	profitAndLossUseCase *report.GetProfitAndLossUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(profitAndLossUseCase *report.GetProfitAndLossUseCase) *ReportController {
	return &ReportController{
		profitAndLossUseCase: profitAndLossUseCase,
	}
}

// ProfitAndLoss handles GET /reports/profit-and-loss requests.
// Query: start_date, end_date (YYYY-MM-DD) and an optional comma-separated data_types.
func (c *ReportController) ProfitAndLoss(ctx *gin.Context) {
	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	startDate, ok := parseDateQuery(ctx, "start_date")
	if !ok {
		return
	}
	endDate, ok := parseDateQuery(ctx, "end_date")
	if !ok {
		return
	}

	input := report.GetProfitAndLossInput{
		TenantID:  tenantID,
		StartDate: startDate,
		EndDate:   endDate,
		DataTypes: parseDataTypes(ctx.QueryArray("data_types")),
	}

	output, err := c.profitAndLossUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfitAndLossResponse(output))
}

// parseDateQuery leaves a missing date as the zero time so the use case
// reports which one is missing.
func parseDateQuery(ctx *gin.Context, key string) (time.Time, bool) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return time.Time{}, true
	}

	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + key + ", expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDateFormat),
		})
		return time.Time{}, false
	}
	return parsed, true
}

// parseDataTypes accepts both repeated and comma-separated values.
func parseDataTypes(values []string) []entity.DataType {
	var out []entity.DataType
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			out = append(out, entity.DataType(strings.ToLower(part)))
		}
	}
	return out
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var rptErr *domainerror.ReportError
	if errors.As(err, &rptErr) {
		status := http.StatusBadRequest
		if rptErr.Code == domainerror.ErrCodeReportInternalError {
			status = http.StatusInternalServerError
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: rptErr.Message,
			Code:  string(rptErr.Code),
		})
		return
	}

	respondInternalError(ctx, err)
}
