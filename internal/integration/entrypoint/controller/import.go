// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/pnl/internal/application/usecase/importing"
	"github.com/finance-tracker/pnl/internal/domain/entity"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
	"github.com/finance-tracker/pnl/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/pnl/internal/integration/entrypoint/middleware"
)

// maxUploadBytes bounds multipart uploads held in memory.
const maxUploadBytes = 32 << 20

// ImportController handles record import endpoints.
type ImportController struct {
	importRecordsUseCase *importing.ImportRecordsUseCase
	previewImportUseCase *importing.PreviewImportUseCase
	importFileUseCase    *importing.ImportFileUseCase
}

// NewImportController creates a new import controller instance.
func NewImportController(
	importRecordsUseCase *importing.ImportRecordsUseCase,
	previewImportUseCase *importing.PreviewImportUseCase,
	importFileUseCase *importing.ImportFileUseCase,
) *ImportController {
	return &ImportController{
		importRecordsUseCase: importRecordsUseCase,
		previewImportUseCase: previewImportUseCase,
		importFileUseCase:    importFileUseCase,
	}
}

// Import handles POST /imports requests.
func (c *ImportController) Import(ctx *gin.Context) {
	input, ok := c.bindImportInput(ctx)
	if !ok {
		return
	}

	output, err := c.importRecordsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleImportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toImportRecordsResponse(output))
}

// Preview handles POST /imports/preview requests.
// The rows are transformed exactly as Import would, but nothing is stored.
func (c *ImportController) Preview(ctx *gin.Context) {
	input, ok := c.bindImportInput(ctx)
	if !ok {
		return
	}

	output, err := c.previewImportUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleImportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPreviewImportResponse(output.Records, output.Skipped))
}

// ImportFile handles POST /imports/file multipart uploads.
func (c *ImportController) ImportFile(ctx *gin.Context) {
	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}
	actorID, _ := middleware.GetActorIDFromContext(ctx)

	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxUploadBytes)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "A file upload is required",
			Code:  string(domainerror.ErrCodeMissingImportFields),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Could not open uploaded file",
			Code:  string(domainerror.ErrCodeUnreadableFile),
		})
		return
	}
	defer file.Close()

	output, err := c.importFileUseCase.Execute(ctx.Request.Context(), importing.ImportFileInput{
		TenantID: tenantID,
		ActorID:  actorID,
		Filename: fileHeader.Filename,
		File:     file,
		Source:   entity.Source(ctx.PostForm("source")),
		DataType: entity.DataType(ctx.PostForm("data_type")),
		Encoding: ctx.PostForm("encoding"),
	})
	if err != nil {
		c.handleImportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toImportRecordsResponse(output))
}

func (c *ImportController) bindImportInput(ctx *gin.Context) (importing.ImportRecordsInput, bool) {
	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return importing.ImportRecordsInput{}, false
	}
	actorID, _ := middleware.GetActorIDFromContext(ctx)

	var req dto.ImportRecordsRequest
	if err := bindJSONWithNumbers(ctx, &req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingImportFields),
			Details: err.Error(),
		})
		return importing.ImportRecordsInput{}, false
	}

	input := importing.ImportRecordsInput{
		TenantID: tenantID,
		ActorID:  actorID,
		Source:   entity.Source(req.Source),
		DataType: entity.DataType(req.DataType),
		Rows:     req.ToRawRecords(),
	}
	if req.Config != nil {
		cfg := req.Config.ToTransformConfig()
		input.Config = &cfg
	}
	return input, true
}

func toImportRecordsResponse(output *importing.ImportRecordsOutput) dto.ImportRecordsResponse {
	return dto.ImportRecordsResponse{
		ImportID:      output.ImportID.String(),
		ImportedCount: output.ImportedCount,
		SkippedCount:  output.SkippedCount,
		Skipped:       dto.ToSkippedRowResponses(output.Skipped),
		ImportedAt:    output.ImportedAt,
	}
}

// handleImportError handles import errors and returns appropriate HTTP responses.
func (c *ImportController) handleImportError(ctx *gin.Context, err error) {
	var impErr *domainerror.ImportError
	if errors.As(err, &impErr) {
		ctx.JSON(importStatus(impErr.Code), dto.ErrorResponse{
			Error: impErr.Message,
			Code:  string(impErr.Code),
		})
		return
	}

	respondInternalError(ctx, err)
}

// importStatus maps import error codes to HTTP status codes.
func importStatus(code domainerror.ImportErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmptyImport,
		domainerror.ErrCodeInvalidSource,
		domainerror.ErrCodeInvalidDataType,
		domainerror.ErrCodeInvalidTransformConfig,
		domainerror.ErrCodeMissingImportFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeUnsupportedFileType:
		return http.StatusUnsupportedMediaType
	case domainerror.ErrCodeUnreadableFile:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeSourceFetchFailed:
		return http.StatusBadGateway
	case domainerror.ErrCodeNoSourcesConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
