package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Raghu4002/railway-reservation/internal/domain"
	"github.com/Raghu4002/railway-reservation/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	TrainID         int64  `json:"train_id" binding:"required"`
	JourneyDate     string `json:"journey_date" binding:"required"`
	PassengerName   string `json:"passenger_name" binding:"required"`
	PassengerAge    int    `json:"passenger_age" binding:"required"`
	PassengerGender string `json:"passenger_gender" binding:"required"`
}

type bookingResponse struct {
	ID              int64  `json:"id"`
	Reference       string `json:"reference"`
	RiderID         int64  `json:"rider_id"`
	TrainID         int64  `json:"train_id"`
	JourneyDate     string `json:"journey_date"`
	PassengerName   string `json:"passenger_name"`
	PassengerAge    int    `json:"passenger_age"`
	PassengerGender string `json:"passenger_gender"`
	SeatLabel       string `json:"seat_label"`
	FareCharged     int64  `json:"fare_charged"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

type cancellationResponse struct {
	Reference    string `json:"reference"`
	TrainID      int64  `json:"train_id"`
	SeatRestored bool   `json:"seat_restored"`
	CancelledAt  string `json:"cancelled_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/my-bookings", h.listMine)
	router.GET("/all", h.listAll)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	journeyDate, err := time.Parse("2006-01-02", req.JourneyDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "journey_date must be YYYY-MM-DD"})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), actorFrom(c), booking.CreateBookingInput{
		TrainID:         req.TrainID,
		JourneyDate:     journeyDate,
		PassengerName:   req.PassengerName,
		PassengerAge:    req.PassengerAge,
		PassengerGender: req.PassengerGender,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) listMine(c *gin.Context) {
	bookings, err := h.service.ListBookingsForRider(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) listAll(c *gin.Context) {
	bookings, err := h.service.ListAllBookings(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	found, err := h.service.GetBooking(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	receipt, err := h.service.CancelBooking(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancellationResponse{
		Reference:    receipt.Reference,
		TrainID:      receipt.TrainID,
		SeatRestored: receipt.SeatRestored,
		CancelledAt:  receipt.CancelledAt.Format(time.RFC3339),
	})
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:              b.ID,
		Reference:       b.Reference,
		RiderID:         b.RiderID,
		TrainID:         b.TrainID,
		JourneyDate:     b.JourneyDate.Format("2006-01-02"),
		PassengerName:   b.PassengerName,
		PassengerAge:    b.PassengerAge,
		PassengerGender: b.PassengerGender,
		SeatLabel:       b.SeatLabel,
		FareCharged:     b.FareCharged,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}

func toBookingResponses(bookings []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return out
}
