package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Skufu/cardiorisk/internal/view"
)

const (
	requestIDHeader = "X-Request-ID"
	ctxController   = "controller"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("request_id", rid)
		c.Header(requestIDHeader, rid)
		c.Next()
	}
}

func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		evt := logger.Info()
		switch {
		case len(c.Errors) > 0:
			evt = logger.Error().Err(c.Errors.Last())
		case status >= http.StatusInternalServerError:
			evt = logger.Error()
		case status >= http.StatusBadRequest:
			evt = logger.Warn()
		}

		evt.
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("remote_ip", c.ClientIP()).
			Msg("request")
	}
}

func LimitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// Sessions attaches the caller's view controller to the context.
func Sessions(store *SessionStore) gin.HandlerFunc {
	maxAge := int(store.ttl / time.Second)
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookie)
		ctrl, sid, _ := store.Get(id)
		// Refreshed on every request so the cookie outlives the server-side
		// idle timeout.
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, sid, maxAge, "/", "", false, true)
		c.Set(ctxController, ctrl)
		c.Next()
	}
}

func controllerFrom(c *gin.Context) *view.Controller {
	return c.MustGet(ctxController).(*view.Controller)
}
