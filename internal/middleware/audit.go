package middleware

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopkit-io/shopkit-api/internal/models"
	"github.com/shopkit-io/shopkit-api/pkg/jobs"
)

type auditWriter interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// AuditTrail records successful mutating requests asynchronously so the
// audit write never adds latency to the response path.
type AuditTrail struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewAuditTrail wires the audit queue to the given writer.
func NewAuditTrail(writer auditWriter, cfg jobs.QueueConfig, logger *zap.Logger) *AuditTrail {
	if logger == nil {
		logger = zap.NewNop()
	}
	trail := &AuditTrail{logger: logger}
	trail.queue = jobs.NewQueue("audit", func(ctx context.Context, job jobs.Job) error {
		entry, ok := job.Payload.(*models.AuditLog)
		if !ok {
			return nil
		}
		return writer.CreateAuditLog(ctx, entry)
	}, cfg)
	return trail
}

// Start begins consuming queued audit entries.
func (t *AuditTrail) Start(ctx context.Context) { t.queue.Start(ctx) }

// Stop drains the audit workers.
func (t *AuditTrail) Stop() { t.queue.Stop() }

// Middleware captures one audit entry per successful request.
func (t *AuditTrail) Middleware(action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		var userID *string
		if claims, ok := c.Get(ContextUserKey); ok {
			if typed, ok := claims.(*models.JWTClaims); ok {
				userID = &typed.UserID
			}
		}

		body, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		})

		entry := &models.AuditLog{
			UserID:    userID,
			Action:    action,
			Resource:  resource,
			NewValues: body,
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		}
		if err := t.queue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: "audit", Payload: entry}); err != nil {
			t.logger.Warn("failed to enqueue audit entry", zap.Error(err))
		}
	}
}
