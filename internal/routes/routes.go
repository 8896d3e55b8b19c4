package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-claims-templui/internal/app/api"
	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/auth"
	"github.com/FACorreiaa/go-claims-templui/internal/app/handlers"
	"github.com/FACorreiaa/go-claims-templui/internal/app/middleware"
	"github.com/FACorreiaa/go-claims-templui/internal/pkg/config"
)

type AppHandlers struct {
	Pages   *handlers.BaseHandler
	Auth    *handlers.AuthHandlers
	Claims  *handlers.ClaimsHandlers
	Profile *handlers.ProfileHandlers
	Admin   *handlers.AdminHandlers
}

// Dependencies are the process-wide collaborators shared by every request.
type Dependencies struct {
	Backend      handlers.Backend
	Decoder      auth.Decoder
	Destinations auth.Destinations
}

// NewDependencies builds the backend client and credential decoder from cfg.
// The client reads the bearer credential from whichever session is attached to
// the request context, and a 401 or 403 logs that session out.
func NewDependencies(cfg *config.Config, log *zap.Logger) (*Dependencies, error) {
	client, err := api.New(cfg.Backend.BaseURL,
		api.WithTimeout(cfg.Backend.Timeout),
		api.WithLogger(log),
		api.WithCredentialSource(auth.CredentialFromContext),
		api.WithUnauthorizedHandler(func(ctx context.Context) {
			if sess := auth.SessionFromContext(ctx); sess != nil {
				log.Info("Backend rejected credential, signing out")
				sess.Logout()
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	return &Dependencies{
		Backend:      client,
		Decoder:      auth.NewCachedDecoder(auth.NewCodec(cfg.Auth.AdminRole), cfg.Auth.DecodeCacheTTL),
		Destinations: auth.DefaultDestinations,
	}, nil
}

// Setup registers the session middleware and every page. It must run after the
// cookie session store is installed.
func Setup(r *gin.Engine, deps *Dependencies, log *zap.Logger) {
	base := handlers.NewBaseHandler(log, deps.Backend, deps.Destinations)
	h := &AppHandlers{
		Pages:   base,
		Auth:    handlers.NewAuthHandlers(base),
		Claims:  handlers.NewClaimsHandlers(base),
		Profile: handlers.NewProfileHandlers(base),
		Admin:   handlers.NewAdminHandlers(base),
	}

	r.Use(auth.SessionMiddleware(deps.Decoder, log))
	setupRouter(r, h, deps.Destinations)
}

func setupRouter(r *gin.Engine, h *AppHandlers, dest auth.Destinations) {
	public := r.Group("/")
	public.Use(auth.RequireGuard(auth.PublicOnly, dest))
	{
		public.GET("/", h.Pages.ShowLandingPage)
		public.GET("/contact", h.Pages.ShowContactPage)
		public.GET("/login", h.Auth.ShowLoginPage)
		public.POST("/login", h.Auth.Login)
		public.GET("/register", h.Auth.ShowRegisterPage)
		public.POST("/register", h.Auth.Register)
	}

	user := r.Group("/")
	user.Use(auth.RequireGuard(auth.UserOnly, dest))
	{
		user.GET("/new-claim", h.Claims.ShowNewClaim)
		user.POST("/new-claim", h.Claims.CreateClaim)
		user.GET("/new-claim/:id/upload", h.Claims.ShowUpload)
		user.POST("/new-claim/:id/estimate", h.Claims.SubmitEstimate)
		user.GET("/new-claim/:id/report.pdf", h.Claims.DownloadEstimateReport)
		user.GET("/claims", h.Claims.ListClaims)
		user.GET("/about", h.Pages.ShowAboutPage)
		user.GET("/profile", h.Profile.ShowProfile)
		user.POST("/profile/picture", h.Profile.UploadPicture)
	}

	admin := r.Group("/admin")
	admin.Use(auth.RequireGuard(auth.AdminOnly, dest))
	{
		admin.GET("", h.Admin.ShowDashboard)
		admin.POST("/claims/:id/status", h.Admin.UpdateStatus)
	}

	signedIn := r.Group("/")
	signedIn.Use(auth.RequireGuard(auth.AnyAuthenticated, dest))
	{
		signedIn.GET("/claim/:id", h.Claims.ShowClaim)
		signedIn.GET("/claim/:id/report.pdf", h.Claims.DownloadReport)
		signedIn.POST("/logout", h.Auth.Logout)
	}

	r.NoRoute(func(c *gin.Context) {
		middleware.Redirect(c, "/")
	})
}
