// Package server assembles the HTTP API: services, handlers and routes.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"kasatakip/internal/config"
	_ "kasatakip/internal/docs" // Import swagger docs
	"kasatakip/internal/handlers"
	"kasatakip/internal/middleware"
	"kasatakip/internal/services"
	"kasatakip/internal/session"
)

// Deps are the external resources the router needs.
type Deps struct {
	DB       *gorm.DB
	Sessions session.Store
	Config   *config.Config
}

// @title           KasaTakip API
// @version         1.0
// @description     Multi-tenant cash register ledger: safes, transactions, currency exchanges, payroll and reports.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// NewRouter wires every service and handler onto a gin engine.
func NewRouter(deps Deps) *gin.Engine {
	db := deps.DB

	// Services
	accessService := services.NewAccessService(db)
	userService := services.NewUserService(db)
	currencyService := services.NewCurrencyService(db)
	safeService := services.NewSafeService(db, accessService)
	authorizationService := services.NewAuthorizationService(db, accessService)
	selectionService := services.NewSelectionService(deps.Sessions, accessService)
	transactionService := services.NewTransactionService(db, accessService)
	exchangeService := services.NewExchangeService(db, accessService)
	currentAccountService := services.NewCurrentAccountService(db)
	employeeService := services.NewEmployeeService(db, accessService)
	salaryService := services.NewSalaryService(db, accessService)
	bankService := services.NewBankService(db)
	bankAccountService := services.NewBankAccountService(db)
	dashboardService := services.NewDashboardService(db, accessService)
	reportService := services.NewReportService(db, accessService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	currencyHandler := handlers.NewCurrencyHandler(currencyService)
	safeHandler := handlers.NewSafeHandler(safeService, selectionService)
	authorizationHandler := handlers.NewAuthorizationHandler(authorizationService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, selectionService)
	exchangeHandler := handlers.NewExchangeHandler(exchangeService, selectionService)
	currentAccountHandler := handlers.NewCurrentAccountHandler(currentAccountService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, salaryService)
	bankHandler := handlers.NewBankHandler(bankService, bankAccountService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, selectionService)
	reportHandler := handlers.NewReportHandler(reportService)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(deps.Config.CORSAllowedOrigins))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/dashboard", dashboardHandler.GetDashboard)

	currencies := protected.Group("/currencies")
	currencies.POST("", currencyHandler.CreateCurrency)
	currencies.GET("", currencyHandler.ListCurrencies)
	currencies.GET("/:id", currencyHandler.GetCurrency)
	currencies.PUT("/:id", currencyHandler.UpdateCurrency)
	currencies.DELETE("/:id", currencyHandler.DeleteCurrency)

	safes := protected.Group("/safes")
	safes.POST("", safeHandler.CreateSafe)
	safes.GET("", safeHandler.ListSafes)
	safes.GET("/:id", safeHandler.GetSafe)
	safes.PUT("/:id", safeHandler.RenameSafe)
	safes.DELETE("/:id", safeHandler.DeleteSafe)
	safes.GET("/:id/balances", safeHandler.GetSafeBalances)
	safes.GET("/:id/transactions", transactionHandler.GetSafeTransactions)

	sess := protected.Group("/session")
	sess.GET("/safe", safeHandler.GetSelectedSafe)
	sess.PUT("/safe", safeHandler.SelectSafe)

	grants := protected.Group("/safe-authorizations")
	grants.POST("", authorizationHandler.AssignAccess)
	grants.GET("", authorizationHandler.ListGrants)
	grants.POST("/:safeId/:userId/toggle", authorizationHandler.ToggleAccess)
	grants.DELETE("/:safeId/:userId", authorizationHandler.RevokeAccess)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	exchanges := protected.Group("/exchanges")
	exchanges.POST("", exchangeHandler.CreateExchange)
	exchanges.GET("", exchangeHandler.ListExchanges)
	exchanges.GET("/:id", exchangeHandler.GetExchange)

	currentAccounts := protected.Group("/current-accounts")
	currentAccounts.POST("", currentAccountHandler.CreateCurrentAccount)
	currentAccounts.GET("", currentAccountHandler.ListCurrentAccounts)
	currentAccounts.GET("/:id", currentAccountHandler.GetCurrentAccount)
	currentAccounts.PUT("/:id", currentAccountHandler.UpdateCurrentAccount)
	currentAccounts.DELETE("/:id", currentAccountHandler.DeleteCurrentAccount)

	employees := protected.Group("/employees")
	employees.POST("", employeeHandler.CreateEmployee)
	employees.GET("", employeeHandler.ListEmployees)
	employees.GET("/:id", employeeHandler.GetEmployee)
	employees.PUT("/:id", employeeHandler.UpdateEmployee)
	employees.DELETE("/:id", employeeHandler.DeleteEmployee)
	employees.POST("/:id/salary-payments", employeeHandler.CreateSalaryPayment)
	employees.GET("/:id/salary-payments", employeeHandler.GetEmployeePayments)

	payments := protected.Group("/salary-payments")
	payments.GET("/:id", employeeHandler.GetSalaryPayment)
	payments.PUT("/:id", employeeHandler.UpdateSalaryPayment)
	payments.DELETE("/:id", employeeHandler.DeleteSalaryPayment)

	banks := protected.Group("/banks")
	banks.POST("", bankHandler.CreateBank)
	banks.GET("", bankHandler.ListBanks)
	banks.PUT("/:id", bankHandler.UpdateBank)
	banks.DELETE("/:id", bankHandler.DeleteBank)

	bankAccounts := protected.Group("/bank-accounts")
	bankAccounts.POST("", bankHandler.CreateBankAccount)
	bankAccounts.GET("", bankHandler.ListBankAccounts)
	bankAccounts.GET("/:id", bankHandler.GetBankAccount)
	bankAccounts.PUT("/:id", bankHandler.UpdateBankAccount)
	bankAccounts.DELETE("/:id", bankHandler.DeleteBankAccount)

	reports := protected.Group("/reports")
	reports.GET("/transactions", reportHandler.GetTransactionReport)
	reports.GET("/transactions/export", reportHandler.ExportTransactionReport)

	return router
}
