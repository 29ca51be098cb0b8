package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/shop-wallet/internal/domain/dto"
	"github.com/wekeepgrowing/shop-wallet/internal/usecase"
)

// AccessHandler handles the shared password check
type AccessHandler struct {
	logger        *zap.Logger
	accessService *usecase.AccessService
}

// NewAccessHandler creates a new access handler instance
func NewAccessHandler(logger *zap.Logger, accessService *usecase.AccessService) *AccessHandler {
	return &AccessHandler{
		logger:        logger,
		accessService: accessService,
	}
}

// CheckPassword handles POST /api/auth/check
func (h *AccessHandler) CheckPassword(c echo.Context) error {
	var req dto.AccessCheckRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.AccessCheckResponse{Success: false, Msg: "Invalid request body"})
	}

	grant, err := h.accessService.CheckPassword(req.Password)
	if err != nil {
		return err
	}
	if grant == nil {
		return c.JSON(http.StatusUnauthorized, dto.AccessCheckResponse{Success: false, Msg: "Incorrect password"})
	}

	resp := dto.AccessCheckResponse{Success: true}
	if grant.Token != "" {
		resp.Token = grant.Token
		resp.ExpiresAt = &grant.ExpiresAt
	}
	return c.JSON(http.StatusOK, resp)
}
