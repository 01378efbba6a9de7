package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/pnl/internal/application/usecase/settings"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
	"github.com/finance-tracker/pnl/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/pnl/internal/integration/entrypoint/middleware"
)

// SettingsController handles tenant mapping configuration endpoints.
type SettingsController struct {
	getMappingUseCase    *settings.GetMappingConfigUseCase
	updateMappingUseCase *settings.UpdateMappingConfigUseCase
}

// NewSettingsController creates a new settings controller instance.
func NewSettingsController(
	getMappingUseCase *settings.GetMappingConfigUseCase,
	updateMappingUseCase *settings.UpdateMappingConfigUseCase,
) *SettingsController {
	return &SettingsController{
		getMappingUseCase:    getMappingUseCase,
		updateMappingUseCase: updateMappingUseCase,
	}
}

// GetMapping handles GET /settings/mapping requests.
func (c *SettingsController) GetMapping(ctx *gin.Context) {
	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.getMappingUseCase.Execute(ctx.Request.Context(), settings.GetMappingConfigInput{TenantID: tenantID})
	if err != nil {
		c.handleSettingsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMappingConfigResponse(output.Config, output.IsDefault))
}

// UpdateMapping handles PUT /settings/mapping requests.
func (c *SettingsController) UpdateMapping(ctx *gin.Context) {
	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.MappingConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeInvalidMappingConfig),
			Details: err.Error(),
		})
		return
	}

	output, err := c.updateMappingUseCase.Execute(ctx.Request.Context(), settings.UpdateMappingConfigInput{
		TenantID: tenantID,
		Config:   req.ToTransformConfig(),
	})
	if err != nil {
		c.handleSettingsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMappingConfigResponse(output.Config, false))
}

// handleSettingsError handles settings errors and returns appropriate HTTP responses.
func (c *SettingsController) handleSettingsError(ctx *gin.Context, err error) {
	var setErr *domainerror.SettingsError
	if errors.As(err, &setErr) && setErr.Code == domainerror.ErrCodeInvalidMappingConfig {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   setErr.Message,
			Code:    string(setErr.Code),
			Details: errorDetails(setErr.Err),
		})
		return
	}

	respondInternalError(ctx, err)
}

func errorDetails(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
