package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tyreplus-backend/internal/domain/identity"
	"tyreplus-backend/internal/handler/api"
	"tyreplus-backend/internal/handler/middleware"
	"tyreplus-backend/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	leadHandler *api.LeadHandler,
	dealerHandler *api.DealerHandler,
	walletHandler *api.WalletHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, leadHandler, dealerHandler, walletHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	leadHandler *api.LeadHandler,
	dealerHandler *api.DealerHandler,
	walletHandler *api.WalletHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api/v1")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/customer/send-otp", Handler: authHandler.CustomerSendOtp},
				{Method: http.MethodPost, Path: "/customer/verify-otp", Handler: authHandler.CustomerVerifyOtp},
				{Method: http.MethodPost, Path: "/dealer/send-otp", Handler: authHandler.DealerSendOtp},
				{Method: http.MethodPost, Path: "/dealer/verify-otp", Handler: authHandler.DealerVerifyOtp},
				{Method: http.MethodPost, Path: "/dealer/login", Handler: authHandler.DealerLogin},
				{Method: http.MethodPost, Path: "/dealer/register/send-otp", Handler: authHandler.DealerRegisterSendOtp},
				{Method: http.MethodPost, Path: "/dealer/register/complete", Handler: authHandler.DealerRegisterComplete},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/set-password", Handler: authHandler.SetPassword},
			})
		}

		leads := apiGroup.Group("/leads")
		leads.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(identity.RoleCustomer))
		{
			addRoutes(leads, []route{
				{Method: http.MethodPost, Path: "", Handler: leadHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: leadHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: leadHandler.Get},
				{Method: http.MethodGet, Path: "/:id/offers", Handler: leadHandler.ListOffers},
				{Method: http.MethodPost, Path: "/:id/select", Handler: leadHandler.SelectOffer},
			})
		}

		dealer := apiGroup.Group("/dealer")
		dealer.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(identity.RoleDealer))
		{
			addRoutes(dealer, []route{
				{Method: http.MethodGet, Path: "/leads", Handler: dealerHandler.ListDiscoverable},
				{Method: http.MethodGet, Path: "/leads/unlocked", Handler: dealerHandler.ListUnlocked},
				{Method: http.MethodGet, Path: "/leads/:id", Handler: dealerHandler.GetLead},
				{Method: http.MethodPost, Path: "/leads/:id/offers", Handler: dealerHandler.SubmitOffer},
				{Method: http.MethodPatch, Path: "/leads/:id/status", Handler: dealerHandler.UpdateLeadStatus},
				{Method: http.MethodGet, Path: "/profile", Handler: dealerHandler.GetProfile},
				{Method: http.MethodPut, Path: "/profile", Handler: dealerHandler.UpdateProfile},
				{Method: http.MethodGet, Path: "/dashboard", Handler: dealerHandler.Dashboard},
				{Method: http.MethodGet, Path: "/wallet", Handler: walletHandler.GetWallet},
				{Method: http.MethodGet, Path: "/wallet/packages", Handler: walletHandler.ListPackages},
				{Method: http.MethodPost, Path: "/wallet/recharge", Handler: walletHandler.InitiateRecharge},
				{Method: http.MethodPost, Path: "/wallet/recharge/verify", Handler: walletHandler.VerifyRecharge},
				{Method: http.MethodPost, Path: "/wallet/test-recharge", Handler: walletHandler.TestRecharge},
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
