package api

import (
	"github.com/gin-gonic/gin"

	"fintrack/internal/middleware"
	"fintrack/internal/service"
)

// Deps bundles the services the router mounts.
type Deps struct {
	Auth       *service.AuthService
	Users      *service.UserService
	Wallets    *service.WalletService
	Types      *service.OperationTypeService
	Operations *service.OperationService
	Currencies *service.CurrencyService
	Reports    *service.ReportService
	JWTSecret  string
}

// RegisterRoutes mounts the full API surface under /api. Everything except
// auth requires a bearer token.
func RegisterRoutes(r *gin.Engine, deps Deps) {
	apiGroup := r.Group("/api")

	// Auth routes
	auth := apiGroup.Group("/auth")
	auth.POST("/register", RegisterHandler(deps.Auth))
	auth.POST("/login", LoginHandler(deps.Auth))

	// Everything below requires a valid token
	authed := apiGroup.Group("")
	authed.Use(middleware.JWTAuthMiddleware(deps.JWTSecret))

	users := authed.Group("/users")
	users.GET("/me", MeHandler(deps.Users))
	users.PUT("/me/change-password", ChangePasswordHandler(deps.Users))
	users.DELETE("/me", DeleteAccountHandler(deps.Users))

	wallets := authed.Group("/wallets")
	wallets.GET("", ListWalletsHandler(deps.Wallets))
	wallets.POST("", CreateWalletHandler(deps.Wallets))
	wallets.GET("/:id", GetWalletHandler(deps.Wallets))
	wallets.PUT("/:id", UpdateWalletHandler(deps.Wallets))
	wallets.DELETE("/:id", DeleteWalletHandler(deps.Wallets))
	wallets.GET("/:id/operations", ListWalletOperationsHandler(deps.Operations))
	wallets.POST("/:id/operations", CreateOperationHandler(deps.Operations))

	operations := authed.Group("/operations")
	operations.GET("", ListOperationsHandler(deps.Operations))
	operations.GET("/:id", GetOperationHandler(deps.Operations))
	operations.PUT("/:id", UpdateOperationHandler(deps.Operations))
	operations.DELETE("/:id", DeleteOperationHandler(deps.Operations))

	types := authed.Group("/types")
	types.GET("", ListTypesHandler(deps.Types))
	types.POST("", CreateTypeHandler(deps.Types))
	types.GET("/:id", GetTypeHandler(deps.Types))
	types.PUT("/:id", UpdateTypeHandler(deps.Types))
	types.DELETE("/:id", DeleteTypeHandler(deps.Types))

	currencies := authed.Group("/currencies")
	currencies.GET("", ListCurrenciesHandler(deps.Currencies))
	currencies.POST("/refresh", RefreshCurrenciesHandler(deps.Currencies))

	reports := authed.Group("/reports")
	reports.GET("/daily", DailyReportHandler(deps.Reports))
	reports.GET("/period", PeriodReportHandler(deps.Reports))
}
