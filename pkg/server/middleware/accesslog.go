package middleware

import (
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
)

// AccessLog logs one line per request through log.
func AccessLog(log *logrus.Entry, next http.Handler) http.Handler {
	return handlers.CustomLoggingHandler(io.Discard, next, func(_ io.Writer, p handlers.LogFormatterParams) {
		log.WithFields(logrus.Fields{
			"method":     p.Request.Method,
			"path":       p.URL.Path,
			"status":     p.StatusCode,
			"size":       p.Size,
			"remote":     ClientIP(p.Request).String(),
			"request_id": RequestIDFrom(p.Request.Context()),
			"duration":   time.Since(p.TimeStamp).String(),
		}).Info("request")
	})
}
