package api

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Ayash-Bera/copilot-chatbot/internal/api/handlers"
	"github.com/Ayash-Bera/copilot-chatbot/internal/health"
	"github.com/Ayash-Bera/copilot-chatbot/internal/middleware"
	"github.com/Ayash-Bera/copilot-chatbot/internal/views"
	"github.com/Ayash-Bera/copilot-chatbot/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Dependencies is everything the router hands to its handlers.
type Dependencies struct {
	Chat          *views.ChatView
	Admin         *views.AdminView
	Health        *health.Checker
	RateLimiter   *middleware.RateLimiter
	BackendURL    string
	SessionTTL    time.Duration
	SecureCookies bool
	Logger        *logrus.Logger
}

// NewRouter wires the chat and admin screens, the health report and the
// 404 fallback.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	chartOrigin, err := origin(deps.BackendURL)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(templates)
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		middleware.SecurityHeaders(chartOrigin),
	)

	healthHandler := handlers.NewHealthHandler(deps.Health)
	router.GET("/healthz", healthHandler.Health)

	// Only POSTs reach the backend on demand; loading pages poll with GET
	// once a second and must not be throttled.
	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if deps.RateLimiter != nil {
		limit = deps.RateLimiter.RateLimitWith(handlers.TooManyRequests)
	}

	pages := router.Group("/")
	pages.Use(middleware.Session(deps.SessionTTL, deps.SecureCookies))
	{
		chat := handlers.NewChatHandler(deps.Chat, deps.Logger)
		pages.GET("/", chat.Show)
		pages.POST("/", limit, chat.Submit)

		admin := handlers.NewAdminHandler(deps.Admin, deps.Logger)
		pages.GET("/admin", admin.Show)
		pages.POST("/admin/reload", limit, admin.Reload)
		pages.GET("/admin/export", admin.Export)
		pages.POST("/admin/upload", limit, admin.Upload)
	}

	router.NoRoute(handlers.NotFound)

	return router, nil
}

// origin reduces a base URL to scheme://host for the CSP.
func origin(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid backend URL %q", base)
	}
	return u.Scheme + "://" + u.Host, nil
}
