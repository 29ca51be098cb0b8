package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/shop-wallet/internal/domain/dto"
	"github.com/wekeepgrowing/shop-wallet/internal/usecase"
	apperrors "github.com/wekeepgrowing/shop-wallet/pkg/errors"
)

// PurchaseHandler handles purchase-related HTTP requests
type PurchaseHandler struct {
	logger          *zap.Logger
	purchaseService *usecase.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler instance
func NewPurchaseHandler(logger *zap.Logger, purchaseService *usecase.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		logger:          logger,
		purchaseService: purchaseService,
	}
}

// CreatePurchase handles POST /api/purchases
func (h *PurchaseHandler) CreatePurchase(c echo.Context) error {
	var req dto.CreatePurchaseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	walletUse := decimal.Zero
	if req.WalletUsed != nil {
		walletUse = *req.WalletUsed
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request().Context(), req.ReferID, *req.Amount, walletUse)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.NewPurchaseResponse(purchase))
}

// ListPurchases handles GET /api/purchases
func (h *PurchaseHandler) ListPurchases(c echo.Context) error {
	purchases, err := h.purchaseService.ListPurchases(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewPurchaseListResponse(purchases))
}

// ListPurchasesByCustomer handles GET /api/purchases/customer/:referId
func (h *PurchaseHandler) ListPurchasesByCustomer(c echo.Context) error {
	purchases, err := h.purchaseService.ListPurchasesByCustomer(c.Request().Context(), c.Param("referId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewPurchaseListResponse(purchases))
}

// ClearAllPurchases handles DELETE /api/purchases/clear/all[?reverse=true]
func (h *PurchaseHandler) ClearAllPurchases(c echo.Context) error {
	reverse := false
	if raw := c.QueryParam("reverse"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return apperrors.NewAppError(apperrors.ErrInvalidArgument, "reverse must be a boolean", nil)
		}
		reverse = parsed
	}

	deleted, err := h.purchaseService.ClearAllPurchases(c.Request().Context(), reverse)
	if err != nil {
		return err
	}

	message := "All purchases cleared"
	if reverse {
		message = "All purchases cleared and wallet balances reversed"
	}
	return c.JSON(http.StatusOK, dto.ClearPurchasesResponse{
		Message:  message,
		Deleted:  deleted,
		Reversed: reverse,
	})
}
