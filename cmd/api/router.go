package api

import (
	"net/http"

	"internmail-backend/internal/auth/delivery"
	authUsecase "internmail-backend/internal/auth/usecase"
	emailDelivery "internmail-backend/internal/email/delivery"
	emailUsecasePkg "internmail-backend/internal/email/usecase"
	internshipDelivery "internmail-backend/internal/internship/delivery"
	internshipUsecasePkg "internmail-backend/internal/internship/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, emailUc emailUsecasePkg.EmailUsecase, internshipUc internshipUsecasePkg.InternshipUsecase) {
	authHandler := delivery.NewAuthHandler(authUc)
	emailHandler := emailDelivery.NewEmailHandler(emailUc)
	internshipHandler := internshipDelivery.NewInternshipHandler(internshipUc)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/google", authHandler.GoogleSignIn)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/logout-all", delivery.AuthMiddleware(authUc), authHandler.LogoutAll)
			auth.GET("/me", delivery.AuthMiddleware(authUc), authHandler.Me)
		}

		// Email routes (protected)
		emails := api.Group("/emails")
		emails.Use(delivery.AuthMiddleware(authUc))
		{
			emails.POST("/sync", emailHandler.SyncInbox)
			emails.GET("", emailHandler.GetEmails)
			emails.GET("/digest", emailHandler.DigestInbox)
			emails.POST("/classify-all", emailHandler.ClassifyAll)
			emails.GET("/:id", emailHandler.GetEmailByID)
			emails.POST("/:id/classify", emailHandler.ClassifyEmail)
			emails.POST("/:id/summarize", emailHandler.SummarizeEmail)
		}

		// Assist routes (protected)
		assist := api.Group("/assist")
		assist.Use(delivery.AuthMiddleware(authUc))
		{
			assist.POST("/replies", emailHandler.SuggestReplies)
			assist.POST("/rewrite", emailHandler.RewriteTone)
			assist.POST("/sentiment", emailHandler.AnalyzeSentiment)
			assist.POST("/actions", emailHandler.ExtractActions)
		}

		// Internship tracker routes (protected)
		internships := api.Group("/internships")
		internships.Use(delivery.AuthMiddleware(authUc))
		{
			internships.GET("", internshipHandler.List)
			internships.POST("", internshipHandler.Create)
			internships.PUT("/:id", internshipHandler.Update)
			internships.DELETE("/:id", internshipHandler.Delete)
			internships.POST("/clear", internshipHandler.ClearAll)
		}

		// Stats (protected)
		api.GET("/stats", delivery.AuthMiddleware(authUc), emailHandler.GetStats)
	}
}
