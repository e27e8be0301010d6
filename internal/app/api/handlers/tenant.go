package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rendalink/locador/internal/app/api/middleware"
	"github.com/rendalink/locador/internal/app/service/tenancy"
	models "github.com/rendalink/locador/internal/models"
	"github.com/rendalink/locador/pkg/response"
)

// Tenant portal routes. Each handler resolves the caller's tenant row first;
// a tenant principal without a registry row gets a not-found envelope.

func resolveTenant(c *gin.Context, svc *tenancy.Service) (*models.Tenant, bool) {
	p := middleware.PrincipalFromGin(c)
	t, err := svc.GetTenantByProfileID(c.Request.Context(), p.ProfileID)
	if err != nil {
		if errors.Is(err, tenancy.ErrTenantNotFound) {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, "tenant registration not found"))
			return nil, false
		}
		c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
		return nil, false
	}
	return t, true
}

// @Summary      Submit payment proof (Tenant)
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/tenant/payment-proofs [post]
func ApiSubmitProof(svc *tenancy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tenancy.SubmitProofRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		t, ok := resolveTenant(c, svc)
		if !ok {
			return
		}
		out, err := svc.SubmitProof(c.Request.Context(), t, &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func ApiListMyProofs(svc *tenancy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := resolveTenant(c, svc)
		if !ok {
			return
		}
		out, err := svc.ListProofsByTenant(c.Request.Context(), t.ID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

// @Summary      Open repair request (Tenant)
// @Tags         Tenant
// @Accept       json
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/tenant/repair-requests [post]
func ApiCreateRepair(svc *tenancy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tenancy.CreateRepairRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		t, ok := resolveTenant(c, svc)
		if !ok {
			return
		}
		out, err := svc.CreateRepairRequest(c.Request.Context(), t, &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func ApiListMyRepairs(svc *tenancy.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := resolveTenant(c, svc)
		if !ok {
			return
		}
		out, err := svc.ListRepairsByTenant(c.Request.Context(), t.ID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func RegisterTenantRoutes(r gin.IRouter, svc *tenancy.Service) {
	r.POST("/payment-proofs", ApiSubmitProof(svc))
	r.GET("/payment-proofs", ApiListMyProofs(svc))
	r.POST("/repair-requests", ApiCreateRepair(svc))
	r.GET("/repair-requests", ApiListMyRepairs(svc))
}
