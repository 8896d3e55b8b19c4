package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-claims-templui/internal/app/api"
	"github.com/FACorreiaa/go-claims-templui/internal/app/loader"
	"github.com/FACorreiaa/go-claims-templui/internal/app/middleware"
	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
	"github.com/FACorreiaa/go-claims-templui/internal/app/views"
)

type ProfileHandlers struct {
	*BaseHandler
}

func NewProfileHandlers(base *BaseHandler) *ProfileHandlers {
	return &ProfileHandlers{BaseHandler: base}
}

func (h *ProfileHandlers) load(c *gin.Context) (views.ProfileProps, error) {
	var props views.ProfileProps
	grp := loader.NewGroup(c.Request.Context(), binder(c))
	grp.Go(func(ctx context.Context) (err error) {
		props.User, err = h.Backend.UserDetails(ctx)
		return err
	})
	grp.Go(func(ctx context.Context) (err error) {
		props.History, err = h.Backend.ClaimHistory(ctx)
		return err
	})
	return props, grp.Wait()
}

// ShowProfile loads account details and claim history concurrently.
func (h *ProfileHandlers) ShowProfile(c *gin.Context) {
	props, err := h.load(c)
	if err != nil {
		h.HandleLoadError(c, "Profile", err)
		return
	}
	if c.Query("updated") != "" {
		props.Notice = "Profile picture updated."
	}
	h.RenderPage(c, "Profile - AI Claims", "Profile", views.ProfilePage(props))
}

func (h *ProfileHandlers) UploadPicture(c *gin.Context) {
	fail := func(status int, msg string) {
		props, err := h.load(c)
		if err != nil {
			h.HandleLoadError(c, "Profile", err)
			return
		}
		props.Error = msg
		h.RenderPageStatus(c, status, "Profile - AI Claims", "Profile", views.ProfilePage(props))
	}

	fh, err := c.FormFile("file")
	if err != nil {
		fail(http.StatusBadRequest, models.ErrInvalidImage.Error())
		return
	}
	upload, err := readImage(fh)
	if err != nil {
		fail(http.StatusBadRequest, models.ErrInvalidImage.Error())
		return
	}

	if err := h.Backend.UploadProfilePicture(c.Request.Context(), upload); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.HandleLoadError(c, "Profile", err)
			return
		}
		h.Logger.Warn("Profile picture upload failed", zap.Error(err))
		fail(http.StatusBadGateway, errorMessage(err))
		return
	}
	middleware.Redirect(c, "/profile?updated=1")
}
