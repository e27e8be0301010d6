package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/rendalink/locador/internal/app/api/middleware"
	subsvc "github.com/rendalink/locador/internal/app/service/subscription"
	models "github.com/rendalink/locador/internal/models"
	"github.com/rendalink/locador/pkg/response"
	types "github.com/rendalink/locador/pkg/types"
)

// SubscriptionAdmin is the system-owner console surface over subscriptions.
type SubscriptionAdmin interface {
	Scan(ctx context.Context, req *subsvc.ScanSubscriptionsRequest) (*subsvc.ScanSubscriptionsResponse, error)
	GetByID(ctx context.Context, id string) (*models.Subscription, error)
	AdjustCredits(ctx context.Context, subscriptionID string, amount int, description, operatorID string) (*models.Subscription, error)
	Block(ctx context.Context, subscriptionID, reason, operatorID string) (*models.Subscription, error)
	Unblock(ctx context.Context, subscriptionID, operatorID string) (*models.Subscription, error)
	ListTransactions(ctx context.Context, subscriptionID string, from, size int) ([]*models.CreditTransaction, error)
}

type SubscriptionItem struct {
	ID               string                   `json:"id"`
	OwnerID          string                   `json:"owner_id"`
	Credits          int                      `json:"credits"`
	Status           types.SubscriptionStatus `json:"status"`
	IsBlocked        bool                     `json:"is_blocked"`
	BlockReason      string                   `json:"block_reason"`
	PlanType         types.PlanType           `json:"plan_type"`
	MonthlyAmount    int64                    `json:"monthly_amount"`
	CreditsUpdatedAt *time.Time               `json:"credits_updated_at"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

func toSubscriptionItem(m *models.Subscription) *SubscriptionItem {
	return &SubscriptionItem{
		ID:               m.ID,
		OwnerID:          m.OwnerID,
		Credits:          m.Credits,
		Status:           m.Status,
		IsBlocked:        m.IsBlocked,
		BlockReason:      m.BlockReason,
		PlanType:         m.PlanType,
		MonthlyAmount:    m.MonthlyAmount,
		CreditsUpdatedAt: m.CreditsUpdatedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

type ListSubscriptionsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ListSubscriptionsResponse struct {
	Items []*SubscriptionItem `json:"items"`
	Total int64               `json:"total"`
}

// @Summary      List subscriptions (System Owner)
// @Description  Paginated and filterable subscription listing for the billing console.
// @Tags         System
// @Accept       json
// @Produce      json
// @Param        request body ListSubscriptionsRequest true "Filters, pagination and sorting"
// @Success      200  {object}  handlers.RespListSubscriptions
// @Router       /api/v1/system/subscriptions/list [post]
func ApiListSubscriptions(svc SubscriptionAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ListSubscriptionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.Scan(c.Request.Context(), &subsvc.ScanSubscriptionsRequest{
			Filters: req.Filters, From: req.From, Size: req.Size, SortBy: req.SortBy, SortOrder: req.SortOrder,
		})
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		items := lo.Map(res.Items, func(m *models.Subscription, _ int) *SubscriptionItem { return toSubscriptionItem(m) })
		c.JSON(http.StatusOK, response.OKT(ListSubscriptionsResponse{Items: items, Total: res.Total}))
	}
}

// @Summary      Get subscription (System Owner)
// @Tags         System
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/system/subscriptions/{id} [get]
func ApiGetSubscription(svc SubscriptionAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, subsvc.ErrNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, "subscription not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(toSubscriptionItem(sub)))
	}
}

type AdjustCreditsRequest struct {
	Amount      int    `json:"amount" binding:"required"`
	Description string `json:"description"`
}

// @Summary      Adjust subscription credits (System Owner)
// @Description  Applies a signed manual credit adjustment. The balance clamps at zero and the 30-day timer is re-anchored.
// @Tags         System
// @Accept       json
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Param        request body AdjustCreditsRequest true "Signed credit delta"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/system/subscriptions/{id}/credits [post]
func ApiAdjustCredits(svc SubscriptionAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdjustCreditsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		operator := middleware.PrincipalFromGin(c)
		sub, err := svc.AdjustCredits(c.Request.Context(), c.Param("id"), req.Amount, req.Description, operatorID(operator))
		if err != nil {
			if errors.Is(err, subsvc.ErrNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, "subscription not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(toSubscriptionItem(sub)))
	}
}

type BlockSubscriptionRequest struct {
	Reason string `json:"reason"`
}

// @Summary      Block subscription (System Owner)
// @Tags         System
// @Accept       json
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Param        request body BlockSubscriptionRequest true "Block reason"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/system/subscriptions/{id}/block [post]
func ApiBlockSubscription(svc SubscriptionAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BlockSubscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		operator := middleware.PrincipalFromGin(c)
		sub, err := svc.Block(c.Request.Context(), c.Param("id"), req.Reason, operatorID(operator))
		if err != nil {
			if errors.Is(err, subsvc.ErrNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, "subscription not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(toSubscriptionItem(sub)))
	}
}

// @Summary      Unblock subscription (System Owner)
// @Tags         System
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Success      200  {object}  handlers.RespSubscription
// @Router       /api/v1/system/subscriptions/{id}/unblock [post]
func ApiUnblockSubscription(svc SubscriptionAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		operator := middleware.PrincipalFromGin(c)
		sub, err := svc.Unblock(c.Request.Context(), c.Param("id"), operatorID(operator))
		if err != nil {
			if errors.Is(err, subsvc.ErrNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, "subscription not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(toSubscriptionItem(sub)))
	}
}

// @Summary      List credit transactions (System Owner)
// @Description  Credit ledger history for one subscription, newest first.
// @Tags         System
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Success      200  {object}  handlers.RespCreditTransactions
// @Router       /api/v1/system/subscriptions/{id}/transactions [get]
func ApiListCreditTransactions(svc SubscriptionAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		from := 0
		if v := c.Query("from"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				from = n
			}
		}
		size := 50
		if v := c.Query("size"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				size = n
			} else {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid size"))
				return
			}
		}
		rows, err := svc.ListTransactions(c.Request.Context(), c.Param("id"), from, size)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(rows))
	}
}

func operatorID(p *types.Principal) string {
	if p == nil {
		return ""
	}
	return p.ProfileID
}

func RegisterSystemRoutes(r gin.IRouter, svc SubscriptionAdmin) {
	r.POST("/subscriptions/list", ApiListSubscriptions(svc))
	r.GET("/subscriptions/:id", ApiGetSubscription(svc))
	r.POST("/subscriptions/:id/credits", ApiAdjustCredits(svc))
	r.POST("/subscriptions/:id/block", ApiBlockSubscription(svc))
	r.POST("/subscriptions/:id/unblock", ApiUnblockSubscription(svc))
	r.GET("/subscriptions/:id/transactions", ApiListCreditTransactions(svc))
}
