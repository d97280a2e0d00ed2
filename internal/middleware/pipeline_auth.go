package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "finwallet/internal/errors"
	"finwallet/internal/logger"
)

// PipelineKeyHeader carries the rate pipeline's shared secret.
const PipelineKeyHeader = "X-API-Key"

var (
	errPipelineNotConfigured = &apperrors.AppError{Code: "PIPELINE_NOT_CONFIGURED", Message: "Pipeline endpoints are not configured", StatusCode: http.StatusServiceUnavailable}
	errInvalidAPIKey         = &apperrors.AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
)

// PipelineAuthMiddleware guards the rate ingestion endpoints. Any of keys is
// accepted so a new key can be rolled out before the old one is retired.
// Blank keys are ignored; with none left every request gets 503.
func PipelineAuthMiddleware(keys ...string) gin.HandlerFunc {
	accepted := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			accepted = append(accepted, []byte(k))
		}
	}

	return func(c *gin.Context) {
		if len(accepted) == 0 {
			RespondError(c, errPipelineNotConfigured)
			return
		}
		presented := []byte(c.GetHeader(PipelineKeyHeader))
		match := 0
		for _, k := range accepted {
			// Compare against every key so timing does not reveal which one matched.
			match |= subtle.ConstantTimeCompare(presented, k)
		}
		if match != 1 {
			logger.FromContext(c.Request.Context()).Warnw("rejected pipeline request",
				"path", c.FullPath(),
				"client_ip", c.ClientIP(),
				"key_present", len(presented) > 0,
			)
			RespondError(c, errInvalidAPIKey)
			return
		}
		c.Next()
	}
}
