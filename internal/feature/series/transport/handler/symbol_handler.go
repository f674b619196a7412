// Package handler provides the HTTP handlers of the series feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_analytics/internal/api"
	"stock_analytics/internal/feature/series/domain/entity"
)

// SymbolUsecase lists the symbols the service tracks.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
}

// SymbolHandler serves the symbol directory.
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler creates a SymbolHandler.
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List returns the active symbols in display order. Internal columns (id, market,
// sort key) are not exposed.
//
// GET /symbols
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context())
	if err != nil {
		slog.Error("failed to list symbols", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	out := make([]api.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, api.SymbolItem{Code: s.Code, Name: s.Name})
	}
	c.JSON(http.StatusOK, out)
}
