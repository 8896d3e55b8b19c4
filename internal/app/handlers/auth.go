package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-claims-templui/internal/app/api"
	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/auth"
	"github.com/FACorreiaa/go-claims-templui/internal/app/middleware"
	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
	"github.com/FACorreiaa/go-claims-templui/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-claims-templui/internal/app/views"
)

type AuthHandlers struct {
	*BaseHandler
}

func NewAuthHandlers(base *BaseHandler) *AuthHandlers {
	return &AuthHandlers{BaseHandler: base}
}

func (h *AuthHandlers) ShowLoginPage(c *gin.Context) {
	form := views.LoginForm{}
	if c.Query("registered") != "" {
		form.Notice = "Registration successful. Please sign in."
	}
	h.RenderPage(c, "Sign in - AI Claims", "Login", views.LoginPage(form))
}

func (h *AuthHandlers) ShowRegisterPage(c *gin.Context) {
	h.RenderPage(c, "Register - AI Claims", "Register", views.RegisterPage(views.RegisterForm{}))
}

func (h *AuthHandlers) loginFailed(c *gin.Context, status int, form views.LoginForm, outcome string) {
	metrics.Get().RecordAuth(c.Request.Context(), "login", outcome)
	h.RenderForm(c, status, "Sign in - AI Claims", "Login", views.LoginFormFragment(form), views.LoginPage(form))
}

// Login exchanges credentials for a backend token and starts the session.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Logger.Warn("Failed to bind login form", zap.Error(err))
	}
	form := views.LoginForm{Email: req.Email}

	if req.Email == "" || req.Password == "" {
		form.Error = "Email and password are required"
		h.loginFailed(c, http.StatusBadRequest, form, "invalid")
		return
	}

	sess := session(c)
	if sess == nil {
		h.Logger.Error("Login without session middleware")
		form.Error = "Login is unavailable right now"
		h.loginFailed(c, http.StatusInternalServerError, form, "error")
		return
	}

	raw, err := h.Backend.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, outcome := loginFailure(err)
		form.Error = errorMessage(err)
		switch outcome {
		case "rejected":
			h.Logger.Warn("Login rejected", zap.String("email", req.Email), zap.Error(err))
			form.Error = "Invalid email or password"
		case "invalid":
			h.Logger.Warn("Login refused", zap.String("email", req.Email), zap.Error(err))
		default:
			h.Logger.Error("Login failed", zap.String("email", req.Email), zap.Error(err))
		}
		h.loginFailed(c, status, form, outcome)
		return
	}

	if err := sess.Login(raw); err != nil {
		h.Logger.Error("Backend issued an unusable credential", zap.Error(err))
		form.Error = "Login failed. Please try again."
		h.loginFailed(c, http.StatusBadGateway, form, "error")
		return
	}

	metrics.Get().RecordAuth(c.Request.Context(), "login", "success")
	h.Logger.Info("Successful login", zap.String("email", req.Email), zap.Bool("admin", sess.IsAdmin()))

	target := h.Destinations.UserHome
	if sess.IsAdmin() {
		target = h.Destinations.AdminHome
	}
	middleware.Redirect(c, target)
}

// loginFailure maps a backend login error to a response status. Only 401/403
// means the credentials were wrong.
func loginFailure(err error) (status int, outcome string) {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return http.StatusUnauthorized, "rejected"
	case errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest, "invalid"
	}
	return http.StatusBadGateway, "error"
}

func (h *AuthHandlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Logger.Warn("Failed to bind register form", zap.Error(err))
	}
	req.Name = strings.TrimSpace(req.Name)
	form := views.RegisterForm{Name: req.Name, Email: req.Email}

	fail := func(status int, msg string) {
		metrics.Get().RecordAuth(c.Request.Context(), "register", "rejected")
		form.Error = msg
		h.RenderForm(c, status, "Register - AI Claims", "Register", views.RegisterFormFragment(form), views.RegisterPage(form))
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		fail(http.StatusBadRequest, "Name, email and password are required")
		return
	}

	if err := h.Backend.Register(c.Request.Context(), req); err != nil {
		h.Logger.Warn("Registration failed", zap.String("email", req.Email), zap.Error(err))
		status := http.StatusBadRequest
		if errors.Is(err, api.ErrNetwork) {
			status = http.StatusBadGateway
		}
		fail(status, errorMessage(err))
		return
	}

	metrics.Get().RecordAuth(c.Request.Context(), "register", "success")
	middleware.Redirect(c, h.Destinations.Login+"?registered=1")
}

func (h *AuthHandlers) Logout(c *gin.Context) {
	if sess := auth.GetSession(c); sess != nil {
		sess.Logout()
	}
	metrics.Get().RecordAuth(c.Request.Context(), "logout", "success")
	middleware.Redirect(c, "/")
}
