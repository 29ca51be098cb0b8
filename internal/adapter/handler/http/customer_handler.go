package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/shop-wallet/internal/domain/dto"
	domainErrors "github.com/wekeepgrowing/shop-wallet/internal/domain/errors"
	"github.com/wekeepgrowing/shop-wallet/internal/usecase"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	logger          *zap.Logger
	customerService *usecase.CustomerService
}

// NewCustomerHandler creates a new customer handler instance
func NewCustomerHandler(logger *zap.Logger, customerService *usecase.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		logger:          logger,
		customerService: customerService,
	}
}

// CreateCustomer handles POST /api/customers
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var req dto.CreateCustomerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	customer, err := h.customerService.CreateCustomer(c.Request().Context(), req.Name, req.ContactNumber)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, customer)
}

// GetCustomerByReferralCode handles GET /api/customers/refer/:referId
func (h *CustomerHandler) GetCustomerByReferralCode(c echo.Context) error {
	customer, err := h.customerService.GetByReferralCode(c.Request().Context(), c.Param("referId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// GetCustomerByContact handles GET /api/customers/contact/:contactNumber
func (h *CustomerHandler) GetCustomerByContact(c echo.Context) error {
	customer, err := h.customerService.GetByContactNumber(c.Request().Context(), c.Param("contactNumber"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// ListCustomers handles GET /api/customers
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	customers, err := h.customerService.ListCustomers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// DeleteCustomer handles DELETE /api/customers/:id
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	if err := h.customerService.DeleteCustomer(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Customer deleted successfully"})
}

// AdjustWallet handles PATCH /api/customers/:id/wallet
func (h *CustomerHandler) AdjustWallet(c echo.Context) error {
	id, err := customerID(c)
	if err != nil {
		return err
	}

	var req dto.AdjustWalletRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	customer, err := h.customerService.AdjustWallet(c.Request().Context(), id, *req.Amount)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// customerID parses the :id path parameter. Malformed ids cannot match a customer.
func customerID(c echo.Context) (uuid.UUID, error) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainErrors.NewCustomerNotFoundError("id", raw)
	}
	return id, nil
}
