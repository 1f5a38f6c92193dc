package api

import (
	"net/http"
	"strconv"

	"github.com/Raghu4002/railway-reservation/internal/service/trains"
	"github.com/gin-gonic/gin"
)

type TrainHandler struct {
	service trains.TrainUseCase
}

func NewTrainHandler(service trains.TrainUseCase) *TrainHandler {
	return &TrainHandler{service: service}
}

func (h *TrainHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *TrainHandler) list(c *gin.Context) {
	found, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *TrainHandler) search(c *gin.Context) {
	sourceID, _ := strconv.ParseInt(c.Query("source_id"), 10, 64)
	destinationID, _ := strconv.ParseInt(c.Query("destination_id"), 10, 64)
	found, err := h.service.Search(c.Request.Context(), sourceID, destinationID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *TrainHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *TrainHandler) create(c *gin.Context) {
	var input trains.CreateTrainInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.service.Create(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TrainHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var input trains.UpdateTrainInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.service.Update(c.Request.Context(), actorFrom(c), id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *TrainHandler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
