package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Domenick1991/flightorders/internal/domain"
	"github.com/Domenick1991/flightorders/internal/service/orders"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service orders.OrderUseCase
}

type updateSeatsRequest struct {
	Seats []string `json:"seats"`
}

type submitPaymentRequest struct {
	PaymentCode string `json:"paymentCode"`
}

type orderResponse struct {
	OrderID  string   `json:"orderId"`
	FlightID string   `json:"flightId"`
	UserID   string   `json:"userId"`
	Seats    []string `json:"seats"`
	Status   string   `json:"status"`
}

type orderStatusResponse struct {
	OrderID       string   `json:"orderId"`
	FlightID      string   `json:"flightId"`
	UserID        string   `json:"userId"`
	Seats         []string `json:"seats"`
	Status        string   `json:"status"`
	TimeRemaining int64    `json:"timeRemaining"`
}

func NewOrderHandler(service orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(flights, orders *gin.RouterGroup) {
	flights.POST("/:flightId/orders", h.create)
	orders.GET("/:orderId", h.get)
	orders.POST("/:orderId/seats", h.updateSeats)
	orders.POST("/:orderId/payment", h.submitPayment)
	orders.DELETE("/:orderId", h.cancel)
}

func (h *OrderHandler) create(c *gin.Context) {
	var req orders.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), c.Param("flightId"), req)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, orderResponse{
		OrderID:  order.OrderID,
		FlightID: order.FlightID,
		UserID:   order.UserID,
		Seats:    order.Seats,
		Status:   string(order.Status),
	})
}

func (h *OrderHandler) get(c *gin.Context) {
	order, err := h.service.GetOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, orderStatusResponse{
		OrderID:       order.OrderID,
		FlightID:      order.FlightID,
		UserID:        order.UserID,
		Seats:         order.Seats,
		Status:        string(order.Status),
		TimeRemaining: order.TimeRemaining(time.Now()),
	})
}

func (h *OrderHandler) updateSeats(c *gin.Context) {
	var req updateSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpdateSeats(c.Request.Context(), c.Param("orderId"), req.Seats); err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "seat update accepted"})
}

func (h *OrderHandler) submitPayment(c *gin.Context) {
	var req submitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SubmitPayment(c.Request.Context(), c.Param("orderId"), req.PaymentCode); err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment submitted"})
}

func (h *OrderHandler) cancel(c *gin.Context) {
	if err := h.service.CancelOrder(c.Request.Context(), c.Param("orderId")); err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order cancelled"})
}

// errorStatus maps the domain error taxonomy onto HTTP status codes.
func errorStatus(err error) int {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrFlightNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOrderFinished), errors.Is(err, domain.ErrOrderNotReserved):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
