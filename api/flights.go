package api

import (
	"net/http"

	"github.com/Domenick1991/flightorders/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type seatResponse struct {
	SeatNumber string `json:"seatNumber"`
	Status     string `json:"status"`
}

type seatsResponse struct {
	FlightID string         `json:"flightId"`
	Seats    []seatResponse `json:"seats"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(flights, admin *gin.RouterGroup) {
	flights.GET("/:flightId/seats", h.listSeats)
	admin.POST("/flights/:flightId/reset", h.reset)
}

func (h *FlightHandler) listSeats(c *gin.Context) {
	flight, err := h.service.ListSeats(c.Request.Context(), c.Param("flightId"))
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	resp := seatsResponse{FlightID: flight.ID, Seats: make([]seatResponse, 0, len(flight.Seats))}
	for _, s := range flight.Seats {
		resp.Seats = append(resp.Seats, seatResponse{SeatNumber: s.SeatNumber, Status: string(s.Status)})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) reset(c *gin.Context) {
	if err := h.service.ResetFlight(c.Request.Context(), c.Param("flightId")); err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "flight reset"})
}
