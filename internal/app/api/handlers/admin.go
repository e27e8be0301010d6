package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rendalink/locador/internal/app/api/middleware"
	"github.com/rendalink/locador/internal/app/service/dashboard"
	"github.com/rendalink/locador/internal/app/service/property"
	"github.com/rendalink/locador/internal/app/service/tenancy"
	models "github.com/rendalink/locador/internal/models"
	"github.com/rendalink/locador/pkg/response"
)

// Admin product routes: property and tenant management plus review queues.
// All of them operate on rows scoped to the authenticated owner's profile.

// @Summary      Owner dashboard summary
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/dashboard [get]
func ApiDashboard(svc *dashboard.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := middleware.PrincipalFromGin(c)
		out, err := svc.OwnerSummary(c.Request.Context(), p.ProfileID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

// @Summary      Create property
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/properties [post]
func ApiCreateProperty(svc *property.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req property.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		p := middleware.PrincipalFromGin(c)
		out, err := svc.Create(c.Request.Context(), p.ProfileID, &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func ApiListProperties(svc *property.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := middleware.PrincipalFromGin(c)
		out, err := svc.List(c.Request.Context(), p.ProfileID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func ApiGetProperty(svc *property.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := middleware.PrincipalFromGin(c)
		out, err := svc.Get(c.Request.Context(), p.ProfileID, c.Param("id"))
		if err != nil {
			if errors.Is(err, property.ErrNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, "property not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func ApiUpdateProperty(svc *property.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req property.UpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		p := middleware.PrincipalFromGin(c)
		out, err := svc.Update(c.Request.Context(), p.ProfileID, c.Param("id"), &req)
		if err != nil {
			if errors.Is(err, property.ErrNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, "property not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func ApiDeleteProperty(svc *property.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := middleware.PrincipalFromGin(c)
		if err := svc.Delete(c.Request.Context(), p.ProfileID, c.Param("id")); err != nil {
			if errors.Is(err, property.ErrNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, "property not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "deleted"}))
	}
}

func ApiCreateTenant(svc *tenancy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tenancy.CreateTenantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		p := middleware.PrincipalFromGin(c)
		out, err := svc.CreateTenant(c.Request.Context(), p.ProfileID, &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func ApiListTenants(svc *tenancy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := middleware.PrincipalFromGin(c)
		out, err := svc.ListTenants(c.Request.Context(), p.ProfileID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func ApiUpdateTenant(svc *tenancy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tenancy.UpdateTenantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		p := middleware.PrincipalFromGin(c)
		out, err := svc.UpdateTenant(c.Request.Context(), p.ProfileID, c.Param("id"), &req)
		if err != nil {
			if errors.Is(err, tenancy.ErrTenantNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, "tenant not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func ApiDeleteTenant(svc *tenancy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := middleware.PrincipalFromGin(c)
		if err := svc.DeleteTenant(c.Request.Context(), p.ProfileID, c.Param("id")); err != nil {
			if errors.Is(err, tenancy.ErrTenantNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, "tenant not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "deleted"}))
	}
}

func ApiListOwnerProofs(svc *tenancy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := middleware.PrincipalFromGin(c)
		out, err := svc.ListProofsByOwner(c.Request.Context(), p.ProfileID, models.PaymentProofStatus(c.Query("status")))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func ApiReviewProof(svc *tenancy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tenancy.ReviewProofRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		p := middleware.PrincipalFromGin(c)
		out, err := svc.ReviewProof(c.Request.Context(), p.ProfileID, c.Param("id"), &req)
		if err != nil {
			if errors.Is(err, tenancy.ErrProofNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, "payment proof not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func ApiListOwnerRepairs(svc *tenancy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := middleware.PrincipalFromGin(c)
		out, err := svc.ListRepairsByOwner(c.Request.Context(), p.ProfileID, models.RepairStatus(c.Query("status")))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

type TransitionRepairRequest struct {
	Status models.RepairStatus `json:"status" binding:"required"`
}

func ApiTransitionRepair(svc *tenancy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TransitionRepairRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		p := middleware.PrincipalFromGin(c)
		out, err := svc.TransitionRepair(c.Request.Context(), p.ProfileID, c.Param("id"), req.Status)
		if err != nil {
			if errors.Is(err, tenancy.ErrRequestNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, "repair request not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func RegisterAdminRoutes(r gin.IRouter, dash *dashboard.Service, props *property.Service, ten *tenancy.Service) {
	r.GET("/dashboard", ApiDashboard(dash))

	r.POST("/properties", ApiCreateProperty(props))
	r.GET("/properties", ApiListProperties(props))
	r.GET("/properties/:id", ApiGetProperty(props))
	r.PUT("/properties/:id", ApiUpdateProperty(props))
	r.DELETE("/properties/:id", ApiDeleteProperty(props))

	r.POST("/tenants", ApiCreateTenant(ten))
	r.GET("/tenants", ApiListTenants(ten))
	r.PUT("/tenants/:id", ApiUpdateTenant(ten))
	r.DELETE("/tenants/:id", ApiDeleteTenant(ten))

	r.GET("/payment-proofs", ApiListOwnerProofs(ten))
	r.POST("/payment-proofs/:id/review", ApiReviewProof(ten))

	r.GET("/repair-requests", ApiListOwnerRepairs(ten))
	r.POST("/repair-requests/:id/transition", ApiTransitionRepair(ten))
}
