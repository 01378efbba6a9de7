package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/pnl/internal/application/usecase/taxonomy"
	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
	"github.com/finance-tracker/pnl/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/pnl/internal/integration/entrypoint/middleware"
)

// TaxonomyController handles tenant taxonomy endpoints.
type TaxonomyController struct {
	listUseCase   *taxonomy.ListCategoriesUseCase
	createUseCase *taxonomy.CreateCategoryUseCase
	updateUseCase *taxonomy.UpdateCategoryUseCase
	deleteUseCase *taxonomy.DeleteCategoryUseCase
	seedUseCase   *taxonomy.SeedDefaultsUseCase
}

// NewTaxonomyController creates a new taxonomy controller instance.
func NewTaxonomyController(
	listUseCase *taxonomy.ListCategoriesUseCase,
	createUseCase *taxonomy.CreateCategoryUseCase,
	updateUseCase *taxonomy.UpdateCategoryUseCase,
	deleteUseCase *taxonomy.DeleteCategoryUseCase,
	seedUseCase *taxonomy.SeedDefaultsUseCase,
) *TaxonomyController {
	return &TaxonomyController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		seedUseCase:   seedUseCase,
	}
}

// List handles GET /taxonomy requests.
func (c *TaxonomyController) List(ctx *gin.Context) {
	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), taxonomy.ListCategoriesInput{TenantID: tenantID})
	if err != nil {
		c.handleTaxonomyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTaxonomyListResponse(output.Categories))
}

// Create handles POST /taxonomy requests.
func (c *TaxonomyController) Create(ctx *gin.Context) {
	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateTaxonomyCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingTaxonomyFields),
			Details: err.Error(),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), taxonomy.CreateCategoryInput{
		TenantID: tenantID,
		Name:     req.Name,
		Keywords: req.Keywords,
		Section:  req.Section,
	})
	if err != nil {
		c.handleTaxonomyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTaxonomyCategoryResponse(output.Category))
}

// Update handles PATCH /taxonomy/:id requests.
func (c *TaxonomyController) Update(ctx *gin.Context) {
	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	var req dto.UpdateTaxonomyCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), taxonomy.UpdateCategoryInput{
		TenantID:   tenantID,
		CategoryID: categoryID,
		Name:       req.Name,
		Keywords:   req.Keywords,
		Section:    req.Section,
		Position:   req.Position,
	})
	if err != nil {
		c.handleTaxonomyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTaxonomyCategoryResponse(output.Category))
}

// Delete handles DELETE /taxonomy/:id requests.
func (c *TaxonomyController) Delete(ctx *gin.Context) {
	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), taxonomy.DeleteCategoryInput{
		TenantID:   tenantID,
		CategoryID: categoryID,
	}); err != nil {
		c.handleTaxonomyError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Seed handles POST /taxonomy/seed requests.
func (c *TaxonomyController) Seed(ctx *gin.Context) {
	tenantID, ok := middleware.GetTenantIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.seedUseCase.Execute(ctx.Request.Context(), taxonomy.SeedDefaultsInput{TenantID: tenantID})
	if err != nil {
		c.handleTaxonomyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SeedTaxonomyResponse{CreatedCount: output.CreatedCount})
}

// handleTaxonomyError handles taxonomy errors and returns appropriate HTTP responses.
func (c *TaxonomyController) handleTaxonomyError(ctx *gin.Context, err error) {
	var taxErr *domainerror.TaxonomyError
	if errors.As(err, &taxErr) {
		ctx.JSON(taxonomyStatus(taxErr.Code), dto.ErrorResponse{
			Error: taxErr.Message,
			Code:  string(taxErr.Code),
		})
		return
	}

	respondInternalError(ctx, err)
}

// taxonomyStatus maps taxonomy error codes to HTTP status codes.
func taxonomyStatus(code domainerror.TaxonomyErrorCode) int {
	switch code {
	case domainerror.ErrCodeTaxonomyNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeTaxonomyNameExists:
		return http.StatusConflict
	case domainerror.ErrCodeNotAuthorizedTaxonomy:
		return http.StatusForbidden
	case domainerror.ErrCodeTaxonomyNameTooLong,
		domainerror.ErrCodeInvalidSection,
		domainerror.ErrCodeMissingTaxonomyFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
