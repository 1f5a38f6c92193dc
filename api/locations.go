package api

import (
	"net/http"
	"strconv"

	"github.com/Raghu4002/railway-reservation/internal/service/locations"
	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	service locations.LocationUseCase
}

func NewLocationHandler(service locations.LocationUseCase) *LocationHandler {
	return &LocationHandler{service: service}
}

func (h *LocationHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *LocationHandler) list(c *gin.Context) {
	found, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *LocationHandler) get(c *gin.Context) {
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

func (h *LocationHandler) create(c *gin.Context) {
	var input locations.CreateLocationInput
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

func (h *LocationHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var input locations.UpdateLocationInput
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

func (h *LocationHandler) delete(c *gin.Context) {
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
