package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/pnl/internal/application/usecase/sourcesync"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
	"github.com/finance-tracker/pnl/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/pnl/internal/integration/entrypoint/middleware"
)

// SourceSyncController handles external integration sync endpoints.
type SourceSyncController struct {
	syncUseCase *sourcesync.SyncSourcesUseCase
}

// NewSourceSyncController creates a new source sync controller instance.
func NewSourceSyncController(syncUseCase *sourcesync.SyncSourcesUseCase) *SourceSyncController {
	return &SourceSyncController{
		syncUseCase: syncUseCase,
	}
}

// Sync handles POST /sources/sync requests. The body is optional.
func (c *SourceSyncController) Sync(ctx *gin.Context) {
	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}
	actorID, _ := middleware.GetActorIDFromContext(ctx)

	var req dto.SyncSourcesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.syncUseCase.Execute(ctx.Request.Context(), sourcesync.SyncSourcesInput{
		TenantID: tenantID,
		ActorID:  actorID,
		DataType: entity.DataType(req.DataType),
	})
	if err != nil {
		var impErr *domainerror.ImportError
		if errors.As(err, &impErr) {
			ctx.JSON(importStatus(impErr.Code), dto.ErrorResponse{
				Error:   impErr.Message,
				Code:    string(impErr.Code),
				Details: errorDetails(impErr.Err),
			})
			return
		}
		respondInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSyncSourcesResponse(output))
}
