package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-claims-templui/internal/app/api"
	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/claims"
	"github.com/FACorreiaa/go-claims-templui/internal/app/loader"
	"github.com/FACorreiaa/go-claims-templui/internal/app/middleware"
	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
	"github.com/FACorreiaa/go-claims-templui/internal/app/views"
)

type AdminHandlers struct {
	*BaseHandler
}

func NewAdminHandlers(base *BaseHandler) *AdminHandlers {
	return &AdminHandlers{BaseHandler: base}
}

func (h *AdminHandlers) ShowDashboard(c *gin.Context) {
	all, err := loader.Run(c.Request.Context(), binder(c), h.Backend.AllClaims)
	if err != nil {
		h.HandleLoadError(c, "Admin dashboard", err)
		return
	}
	h.renderDashboard(c, http.StatusOK, all, "")
}

func (h *AdminHandlers) renderDashboard(c *gin.Context, status int, all []models.ClaimSummary, msg string) {
	h.RenderPageStatus(c, status, "Admin dashboard - AI Claims", "Dashboard", views.AdminDashboard(views.AdminDashboardProps{
		Stats:  claims.Summarise(all),
		Claims: all,
		Error:  msg,
	}))
}

// UpdateStatus approves or rejects a claim.
func (h *AdminHandlers) UpdateStatus(c *gin.Context) {
	id, err := claimID(c)
	if err != nil {
		h.HandleLoadError(c, "Admin dashboard", err)
		return
	}
	status := c.PostForm("status")
	if !claims.ValidDecision(status) {
		h.HandleLoadError(c, "Admin dashboard", fmt.Errorf("%w: unknown status %q", models.ErrBadRequest, status))
		return
	}

	err = h.Backend.UpdateClaimStatus(c.Request.Context(), id, status)
	if err == nil {
		h.Logger.Info("Claim status updated", zap.Int64("claim_id", id), zap.String("status", status))
		middleware.Redirect(c, h.Destinations.AdminHome)
		return
	}
	if errors.Is(err, api.ErrUnauthorized) {
		h.HandleLoadError(c, "Admin dashboard", err)
		return
	}

	h.Logger.Warn("Failed to update status", zap.Int64("claim_id", id), zap.Error(err))
	all, loadErr := loader.Run(c.Request.Context(), binder(c), h.Backend.AllClaims)
	if loadErr != nil {
		h.HandleLoadError(c, "Admin dashboard", loadErr)
		return
	}
	h.renderDashboard(c, http.StatusBadGateway, all, "Failed to update status: "+errorMessage(err))
}
