package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/atelierhq/atelier/internal/domain/errors"
	"github.com/atelierhq/atelier/internal/domain/model"
	"github.com/atelierhq/atelier/internal/server/http/dto"
)

// OrderHandler manages checkout and purchase history endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Checkout handles POST /api/checkout/orders.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]model.ItemLine, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.ItemLine{SKU: item.SKU, Name: item.Name, Quantity: item.Quantity, Price: item.Price})
	}

	order, err := h.facade.PlaceGuestOrder(c.Request.Context(), req.Email, items)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidEmail),
			errors.Is(err, domainErrors.ErrEmptyOrder),
			errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// Track handles GET /api/checkout/orders/:number.
func (h *OrderHandler) Track(c *gin.Context) {
	order, err := h.facade.OrderByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// List handles GET /api/user/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.Orders(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Claim handles POST /api/user/orders/claim.
func (h *OrderHandler) Claim(c *gin.Context) {
	userID := CurrentUserID(c)
	result, err := h.facade.ClaimOrders(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMissingEmail):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ClaimResponse{LinkedOrders: result.Linked, GuestOrders: result.Total})
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.ItemLine, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.ItemLine{SKU: item.SKU, Name: item.Name, Quantity: item.Quantity, Price: item.Price})
	}
	return dto.OrderResponse{
		Number:   order.Number,
		Total:    order.Total,
		Items:    items,
		PlacedAt: order.PlacedAt,
	}
}
