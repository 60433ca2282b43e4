package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"flight-booking/internal/domain/user"
	"flight-booking/internal/handler/api"
	"flight-booking/internal/handler/middleware"
	"flight-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine      *gin.Engine
	Config      config.Config
	Auth        *api.AuthHandler
	Flights     *api.FlightHandler
	Checkout    *api.CheckoutHandler
	Webhooks    *api.WebhookHandler
	Reservation *api.ReservationHandler
	Admin       *api.AdminHandler
	AuthMw      *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter
}

func NewRouter(p RouterParams) {
	setupMiddleware(p.Engine, p.Config)
	setupRoutes(p)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := p.AuthMw.RequireAuth()

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: p.Auth.Login, Mw: []gin.HandlerFunc{p.RateLimiter.Limit("login")}},
				{Method: http.MethodPost, Path: "/logout", Handler: p.Auth.Logout},
			})

			authRequired := auth.Group("")
			authRequired.Use(requireAuth)
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: p.Auth.Me},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/flights", Handler: p.Flights.List},
			{Method: http.MethodGet, Path: "/flights/:id", Handler: p.Flights.Get},
			{Method: http.MethodPost, Path: "/checkout", Handler: p.Checkout.Checkout, Mw: []gin.HandlerFunc{p.RateLimiter.Limit("checkout"), requireAuth}},
			{Method: http.MethodGet, Path: "/verify-payment", Handler: p.Checkout.VerifyPayment, Mw: []gin.HandlerFunc{p.RateLimiter.Limit("verify")}},
			{Method: http.MethodPost, Path: "/webhooks/payment-gateway", Handler: p.Webhooks.PaymentGateway, Mw: []gin.HandlerFunc{p.RateLimiter.Limit("webhook")}},
		})

		reservations := apiGroup.Group("/reservations")
		reservations.Use(requireAuth)
		{
			addRoutes(reservations, []route{
				{Method: http.MethodGet, Path: "", Handler: p.Reservation.List},
				{Method: http.MethodGet, Path: "/:id", Handler: p.Reservation.Get},
				{Method: http.MethodGet, Path: "/:id/itinerary.pdf", Handler: p.Reservation.Itinerary},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(requireAuth, p.AuthMw.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/stats", Handler: p.Admin.Stats},
				{Method: http.MethodPost, Path: "/flights", Handler: p.Flights.Create},
				{Method: http.MethodPut, Path: "/flights/:id", Handler: p.Flights.Update},
				{Method: http.MethodDelete, Path: "/flights/:id", Handler: p.Flights.Delete},
				{Method: http.MethodGet, Path: "/flights/:id/passengers", Handler: p.Admin.FlightPassengers},
				{Method: http.MethodGet, Path: "/reservations", Handler: p.Admin.ListReservations},
				{Method: http.MethodPatch, Path: "/reservations/:id", Handler: p.Admin.UpdateReservation},
				{Method: http.MethodDelete, Path: "/reservations/:id", Handler: p.Admin.DeleteReservation},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
