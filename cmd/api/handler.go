package api

import (
	authUsecase "internmail-backend/internal/auth/usecase"
	emailUsecasePkg "internmail-backend/internal/email/usecase"
	internshipUsecasePkg "internmail-backend/internal/internship/usecase"
	"internmail-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase       authUsecase.AuthUsecase
	emailUsecase      emailUsecasePkg.EmailUsecase
	internshipUsecase internshipUsecasePkg.InternshipUsecase
	config            *config.Config
}

func NewHandler(authUc authUsecase.AuthUsecase, emailUc emailUsecasePkg.EmailUsecase, internshipUc internshipUsecasePkg.InternshipUsecase, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase:       authUc,
		emailUsecase:      emailUc,
		internshipUsecase: internshipUc,
		config:            cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.emailUsecase, h.internshipUsecase)

	return r.Run(addr)
}
