package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Raghu4002/railway-reservation/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	actorKey     = "actor"
	requestIDKey = "request_id"

	riderHeader = "X-Rider-ID"
	adminHeader = "X-Admin"
)

// RequestID ensures every request carries an ID for tracing and logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// RequestLogger prints one line per request with the request id.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		rid, _ := c.Get(requestIDKey)
		log.Printf("request_id=%v method=%s path=%s status=%d latency=%s",
			rid, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Authenticate reads the actor identity supplied by the auth gateway. The
// gateway terminates authentication; these headers are trusted as-is.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		riderID, err := strconv.ParseInt(c.Request.Header.Get(riderHeader), 10, 64)
		if err != nil || riderID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid rider identity"})
			return
		}
		isAdmin, _ := strconv.ParseBool(c.Request.Header.Get(adminHeader))
		c.Set(actorKey, domain.Actor{RiderID: riderID, IsAdmin: isAdmin})
		c.Next()
	}
}

// AuthOptional sets the actor when identity headers are present but lets
// anonymous reads through. Mutations still fail authorization downstream when
// the actor is missing or not an admin.
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if riderID, err := strconv.ParseInt(c.Request.Header.Get(riderHeader), 10, 64); err == nil && riderID > 0 {
			isAdmin, _ := strconv.ParseBool(c.Request.Header.Get(adminHeader))
			c.Set(actorKey, domain.Actor{RiderID: riderID, IsAdmin: isAdmin})
		}
		c.Next()
	}
}

func actorFrom(c *gin.Context) domain.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Actor{}
}
