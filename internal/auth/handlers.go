package auth

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/audit"
	"github.com/mrlokans/catalog/internal/config"
)

// User-facing messages.
const (
	MsgLoggedIn           = "You have logged in successfully"
	MsgLoggedOut          = "You have been logged out"
	MsgRegistered         = "Registration successful. Please log in."
	MsgInvalidCredentials = "Invalid username or password"
	MsgTooManyAttempts    = "Too many login attempts. Please try again later."
	MsgUsernameTaken      = "A user with this username already exists"
	MsgUsernameInvalid    = "Username may contain only latin letters, digits and ._-"
)

// EventLogger receives authentication events for the audit trail.
type EventLogger interface {
	LogAuth(userID uint, username, action, ipAddr string, success bool)
}

// isLocalPath validates that a redirect path is local to prevent open redirect attacks.
func isLocalPath(path string) bool {
	if path == "" {
		return false
	}

	// Must start with /
	if !strings.HasPrefix(path, "/") {
		return false
	}

	// Reject protocol-relative URLs (//evil.com)
	if strings.HasPrefix(path, "//") {
		return false
	}

	// Reject URLs with schemes
	if strings.Contains(path, "://") {
		return false
	}

	// Reject paths with backslashes (potential bypass attempts)
	if strings.Contains(path, "\\") {
		return false
	}

	return true
}

// sanitizeRedirectPath returns a safe redirect path, defaulting to "/" if invalid.
func sanitizeRedirectPath(path string) string {
	if isLocalPath(path) {
		return path
	}
	return "/"
}

// AuthController handles authentication-related HTTP endpoints.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	templates      *template.Template
	config         config.Auth
	rateLimiter    *RateLimiter
	events         EventLogger
}

// NewAuthController creates a new authentication controller.
// Templates are loaded from <templatesPath>/auth/*.html; without them pages render as JSON.
func NewAuthController(service *Service, sessionManager *SessionManager, templatesPath string, cfg config.Auth, events EventLogger) *AuthController {
	var tmpl *template.Template
	if templatesPath != "" {
		pattern := filepath.Join(templatesPath, "auth", "*.html")
		if parsed, err := template.ParseGlob(pattern); err == nil {
			tmpl = parsed
		}
	}

	rateLimiter := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     cfg.MaxLoginAttempts,
		WindowDuration:  cfg.RateLimitWindow,
		LockoutDuration: cfg.LockoutDuration,
	})

	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		templates:      tmpl,
		config:         cfg,
		rateLimiter:    rateLimiter,
		events:         events,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/login", ac.LoginPage)
	router.POST("/login", ac.Login)
	router.GET("/register", ac.RegisterPage)
	router.POST("/register", ac.Register)
	router.GET("/logout", ac.Logout)
	router.POST("/logout", ac.Logout)
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	if ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	ac.renderTemplate(c, http.StatusOK, "login.html", gin.H{
		"Title": "Login",
		"Next":  sanitizeRedirectPath(c.Query("next")),
	})
}

// Login handles the login form submission.
func (ac *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := sanitizeRedirectPath(c.PostForm("next"))
	clientIP := c.ClientIP()

	form := gin.H{
		"Title":    "Login",
		"Next":     next,
		"Username": username,
	}

	allowed, retryAfter := ac.rateLimiter.Allow(clientIP, username)
	if !allowed {
		c.Header("Retry-After", retryAfter.String())
		form["Error"] = MsgTooManyAttempts
		form["RetryAfter"] = retryAfter.String()
		ac.renderTemplate(c, http.StatusTooManyRequests, "login.html", form)
		return
	}

	user, err := ac.service.Authenticate(username, password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			log.Printf("Login failed for %q: %v", username, err)
			form["Error"] = "Login failed. Please try again."
			ac.renderTemplate(c, http.StatusInternalServerError, "login.html", form)
			return
		}

		ac.rateLimiter.RecordFailure(clientIP, username)
		ac.logEvent(0, username, audit.ActionLogin, clientIP, false)

		form["Error"] = MsgInvalidCredentials
		ac.renderTemplate(c, http.StatusUnauthorized, "login.html", form)
		return
	}

	ac.rateLimiter.RecordSuccess(clientIP, username)

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		log.Printf("Failed to create session for %q: %v", username, err)
		form["Error"] = "Failed to create session"
		ac.renderTemplate(c, http.StatusInternalServerError, "login.html", form)
		return
	}

	ac.logEvent(user.ID, user.Username, audit.ActionLogin, clientIP, true)
	ac.sessionManager.AddFlash(c.Request.Context(), FlashSuccess, MsgLoggedIn)
	c.Redirect(http.StatusFound, next)
}

// RegisterPage renders the registration form.
func (ac *AuthController) RegisterPage(c *gin.Context) {
	if ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	ac.renderTemplate(c, http.StatusOK, "register.html", gin.H{
		"Title": "Register",
	})
}

// Register handles the registration form submission.
func (ac *AuthController) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := ac.service.Register(username, password)
	if err != nil {
		status, msg := registrationError(err)
		if status == http.StatusInternalServerError {
			log.Printf("Registration of %q failed: %v", username, err)
		}
		ac.logEvent(0, username, audit.ActionRegister, c.ClientIP(), false)
		ac.renderTemplate(c, status, "register.html", gin.H{
			"Title":    "Register",
			"Username": username,
			"Error":    msg,
		})
		return
	}

	ac.logEvent(user.ID, user.Username, audit.ActionRegister, c.ClientIP(), true)
	ac.sessionManager.AddFlash(c.Request.Context(), FlashSuccess, MsgRegistered)
	c.Redirect(http.StatusFound, "/login")
}

// registrationError maps a Register error to a status code and message.
func registrationError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUserExists):
		return http.StatusConflict, MsgUsernameTaken
	case errors.Is(err, ErrUsernameInvalid):
		return http.StatusBadRequest, MsgUsernameInvalid
	case errors.Is(err, ErrUsernameRequired),
		errors.Is(err, ErrUsernameTooLong),
		errors.Is(err, ErrPasswordRequired),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrPasswordTooLong):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Registration failed. Please try again."
	}
}

// Logout clears the session unconditionally and returns to the catalogue.
func (ac *AuthController) Logout(c *gin.Context) {
	data := ac.sessionManager.GetSessionData(c.Request)
	if err := ac.sessionManager.DestroySession(c.Request); err != nil {
		log.Printf("Failed to destroy session: %v", err)
	}
	if data != nil {
		ac.logEvent(data.UserID, data.Username, audit.ActionLogout, c.ClientIP(), true)
	}
	ac.sessionManager.AddFlash(c.Request.Context(), FlashInfo, MsgLoggedOut)
	c.Redirect(http.StatusFound, "/")
}

func (ac *AuthController) logEvent(userID uint, username, action, ip string, success bool) {
	if ac.events != nil {
		ac.events.LogAuth(userID, username, action, ip, success)
	}
}

// renderTemplate renders an auth template or falls back to JSON.
func (ac *AuthController) renderTemplate(c *gin.Context, status int, name string, data gin.H) {
	data["CSRFToken"] = GetCSRFToken(c)
	data["CSRFField"] = template.HTML(CSRFTokenField(c))
	data["Flashes"] = ac.sessionManager.PopFlashes(c.Request.Context())

	if ac.templates == nil {
		delete(data, "CSRFField")
		c.JSON(status, data)
		return
	}

	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := ac.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		log.Printf("Template %s error: %v", name, err)
	}
}
