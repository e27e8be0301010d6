package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rendalink/locador/internal/app/service/billingjob"
	"github.com/rendalink/locador/pkg/logctx"
)

// JobRunner runs the credit consumption batch.
type JobRunner interface {
	Run(ctx context.Context) (*billingjob.Summary, error)
}

type ConsumeCreditsResponse struct {
	Success        bool   `json:"success"`
	ProcessedCount int    `json:"processedCount"`
	BlockedCount   int    `json:"blockedCount"`
	Message        string `json:"message"`
}

type JobErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// @Summary      Trigger credit consumption job
// @Description  Scheduler-triggered batch applying the 30-day credit decrement. Requires the internal service token.
// @Tags         Jobs
// @Produce      json
// @Success      200  {object}  handlers.ConsumeCreditsResponse
// @Failure      500  {object}  handlers.JobErrorResponse
// @Router       /internal/jobs/consume-credits [post]
func ApiConsumeCredits(runner JobRunner, serviceToken string, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if serviceToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(serviceToken)) != 1 {
			c.JSON(http.StatusUnauthorized, JobErrorResponse{Success: false, Error: "invalid service token"})
			return
		}

		summary, err := runner.Run(c.Request.Context())
		if err != nil {
			logctx.FromGin(c, log).Errorw("consume credits job failed", "err", err)
			c.JSON(http.StatusInternalServerError, JobErrorResponse{Success: false, Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, ConsumeCreditsResponse{
			Success:        true,
			ProcessedCount: summary.ProcessedCount,
			BlockedCount:   summary.BlockedCount,
			Message:        summary.Message,
		})
	}
}

func RegisterJobRoutes(r gin.IRouter, runner JobRunner, serviceToken string, log *zap.SugaredLogger) {
	r.POST("/jobs/consume-credits", ApiConsumeCredits(runner, serviceToken, log))
}
