package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wekeepgrowing/shop-wallet/internal/domain/dto"
	"github.com/wekeepgrowing/shop-wallet/internal/usecase"
)

// StatsHandler serves the dashboard totals
type StatsHandler struct {
	statsService *usecase.StatsService
}

// NewStatsHandler creates a new stats handler instance
func NewStatsHandler(statsService *usecase.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c echo.Context) error {
	stats, err := h.statsService.GetStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.StatsResponse{
		TotalCustomers:     stats.TotalCustomers,
		TotalPurchases:     stats.TotalPurchases,
		TotalWalletBalance: stats.TotalWalletBalance,
	})
}
