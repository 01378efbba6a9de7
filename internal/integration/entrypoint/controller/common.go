package controller

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	domainerror "github.com/finance-tracker/pnl/internal/domain/error"
	"github.com/finance-tracker/pnl/internal/integration/entrypoint/dto"
)

func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "Tenant not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

func respondInternalError(ctx *gin.Context, err error) {
	slog.Error("Request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// bindJSONWithNumbers binds a JSON body like ShouldBindJSON but keeps numbers
// as json.Number, so row amounts reach the normalizer without float rounding.
func bindJSONWithNumbers(ctx *gin.Context, obj any) error {
	if ctx.Request == nil || ctx.Request.Body == nil {
		return errors.New("invalid request")
	}
	decoder := json.NewDecoder(ctx.Request.Body)
	decoder.UseNumber()
	if err := decoder.Decode(obj); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(obj)
}
