package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-claims-templui/internal/app/api"
	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/auth"
	"github.com/FACorreiaa/go-claims-templui/internal/app/loader"
	"github.com/FACorreiaa/go-claims-templui/internal/app/middleware"
	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
	"github.com/FACorreiaa/go-claims-templui/internal/app/views"
)

// Backend is the claims API as used by page handlers.
type Backend interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	CreateClaim(ctx context.Context, req models.ClaimRequest) (models.Claim, error)
	SubmitEstimate(ctx context.Context, claimID int64, image api.Upload) (models.FinalEstimate, error)
	GetClaim(ctx context.Context, claimID int64) (models.ClaimDetail, error)
	UserDetails(ctx context.Context) (models.UserDetails, error)
	ClaimHistory(ctx context.Context) ([]models.ClaimSummary, error)
	UploadProfilePicture(ctx context.Context, picture api.Upload) error
	AllClaims(ctx context.Context) ([]models.ClaimSummary, error)
	UpdateClaimStatus(ctx context.Context, claimID int64, status string) error
}

type BaseHandler struct {
	Logger       *zap.Logger
	Backend      Backend
	Destinations auth.Destinations
}

func NewBaseHandler(logger *zap.Logger, backend Backend, dest auth.Destinations) *BaseHandler {
	return &BaseHandler{Logger: logger, Backend: backend, Destinations: dest}
}

func (h *BaseHandler) NewLayoutData(c *gin.Context, title, activeNav string, content templ.Component) models.LayoutTempl {
	user := middleware.GetUserFromContext(c)
	nav := models.UserNav
	switch {
	case user == nil:
		nav = models.OfflineNav
	case user.IsAdmin:
		nav = models.AdminNav
	}

	return models.LayoutTempl{
		Title:     title,
		Content:   content,
		Nav:       nav,
		ActiveNav: activeNav,
		User:      user,
	}
}

func (h *BaseHandler) Render(c *gin.Context, status int, component templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		h.Logger.Error("Failed to render component", zap.String("path", c.FullPath()), zap.Error(err))
	}
}

func (h *BaseHandler) RenderPage(c *gin.Context, title, activeNav string, content templ.Component) {
	h.RenderPageStatus(c, http.StatusOK, title, activeNav, content)
}

// RenderPageStatus always renders the full layout; hx-boost swaps the body.
func (h *BaseHandler) RenderPageStatus(c *gin.Context, status int, title, activeNav string, content templ.Component) {
	h.Render(c, status, views.Layout(h.NewLayoutData(c, title, activeNav, content)))
}

// RenderForm answers HTMX form posts with just the form fragment and plain
// posts with the whole page.
func (h *BaseHandler) RenderForm(c *gin.Context, status int, title, activeNav string, fragment, page templ.Component) {
	if middleware.IsHTMX(c) {
		h.Render(c, status, fragment)
		return
	}
	h.RenderPageStatus(c, status, title, activeNav, page)
}

// HandleLoadError turns a failed page load into a redirect or an error page.
func (h *BaseHandler) HandleLoadError(c *gin.Context, title string, err error) {
	switch {
	case errors.Is(err, loader.ErrStale), errors.Is(err, api.ErrUnauthorized):
		h.Logger.Debug("Page load abandoned", zap.String("path", c.Request.URL.Path), zap.Error(err))
		middleware.Redirect(c, h.Destinations.Login)
	case errors.Is(err, context.Canceled):
		c.Abort()
	case errors.Is(err, models.ErrNotFound):
		h.RenderPageStatus(c, http.StatusNotFound, title, "", views.ErrorPage("Not found", "We could not find what you were looking for."))
	case errors.Is(err, models.ErrBadRequest), errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrMissingClaimID):
		h.RenderPageStatus(c, http.StatusBadRequest, title, "", views.ErrorPage(title, errorMessage(err)))
	case errors.Is(err, api.ErrNetwork):
		h.Logger.Warn("Backend unreachable", zap.String("path", c.Request.URL.Path), zap.Error(err))
		h.RenderPageStatus(c, http.StatusBadGateway, title, "", views.ErrorPage(title, "The claims service is unreachable. Please try again later."))
	default:
		h.Logger.Error("Page load failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		h.RenderPageStatus(c, http.StatusInternalServerError, title, "", views.ErrorPage(title, errorMessage(err)))
	}
}

// errorMessage is the banner text for a failed backend call.
func errorMessage(err error) string {
	if errors.Is(err, api.ErrNetwork) {
		return "The claims service is unreachable. Please try again later."
	}
	if msg := api.Message(err); msg != "" {
		return msg
	}
	if errors.Is(err, models.ErrBadRequest) || errors.Is(err, models.ErrValidation) {
		return err.Error()
	}
	return "Something went wrong. Please try again."
}

func session(c *gin.Context) *auth.Session {
	return auth.GetSession(c)
}

// binder avoids handing loader a typed nil when no session is attached.
func binder(c *gin.Context) loader.Binder {
	if s := session(c); s != nil {
		return s
	}
	return nil
}

func (h *BaseHandler) ShowLandingPage(c *gin.Context) {
	h.RenderPage(c, "AI Claims - Vehicle damage estimates", "Home", views.LandingPage())
}

func (h *BaseHandler) ShowAboutPage(c *gin.Context) {
	h.RenderPage(c, "About - AI Claims", "About", views.AboutPage())
}

func (h *BaseHandler) ShowContactPage(c *gin.Context) {
	h.RenderPage(c, "Contact - AI Claims", "Contact", views.ContactPage())
}
