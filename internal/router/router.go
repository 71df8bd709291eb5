package router

import (
	"time"

	"collegedate/config"
	"collegedate/internal/events"
	"collegedate/internal/handler"
	"collegedate/internal/middleware"
	"collegedate/internal/repository"
	"collegedate/internal/service"
	"collegedate/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, provider payment.Provider, pub events.Publisher, log *logrus.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	profileRepo := repository.NewProfileRepository(db)
	swipeRepo := repository.NewSwipeRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)

	// Services
	matchSvc := service.NewMatchService(conversationRepo, pub, log)
	swipeSvc := service.NewSwipeService(profileRepo, swipeRepo, matchSvc, log)
	paymentSvc := service.NewPaymentService(db, provider, pub, log)
	withdrawalSvc := service.NewWithdrawalService(db, withdrawalRepo, walletRepo, pub, log)

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, profileRepo)
	discoveryHandler := handler.NewDiscoveryHandler(profileRepo, swipeRepo)
	swipeHandler := handler.NewSwipeHandler(swipeSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	webhookHandler := handler.NewPaymentWebhookHandler(paymentSvc, cfg, log)
	meHandler := handler.NewMeHandler(profileRepo, conversationRepo)
	walletHandler := handler.NewWalletHandler(walletRepo, transactionRepo, profileRepo)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawalSvc, withdrawalRepo)
	adminHandler := handler.NewAdminHandler(withdrawalSvc, withdrawalRepo, transactionRepo, profileRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/token", authHandler.Token)

		api.GET("/discover", authMw, discoveryHandler.Discover)
		api.POST("/swipes", authMw, swipeHandler.Create)
		api.POST("/payments/verify", authMw, paymentHandler.Verify)
		api.POST("/webhooks/flutterwave", webhookHandler.Handle)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.GetProfile)
			me.GET("/conversations", meHandler.ListConversations)
			me.GET("/wallet", walletHandler.GetBalance)
			me.GET("/wallet/transactions", walletHandler.GetTransactions)
			me.POST("/withdrawals", withdrawalHandler.Create)
			me.GET("/withdrawals", withdrawalHandler.ListMine)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.GET("/withdrawals", adminHandler.ListWithdrawals)
			admin.POST("/withdrawals/:id/approve", adminHandler.ApproveWithdrawal)
			admin.POST("/withdrawals/:id/reject", adminHandler.RejectWithdrawal)
			admin.POST("/withdrawals/:id/process", adminHandler.ProcessWithdrawal)
			admin.GET("/transactions", adminHandler.ListTransactions)
			admin.PATCH("/profiles/:id/block", adminHandler.BlockProfile)
		}
	}

	return r
}
