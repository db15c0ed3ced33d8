package delivery

import (
	"errors"
	"net/http"

	emaildomain "internmail-backend/internal/email/domain"
	emaildto "internmail-backend/internal/email/dto"
	"internmail-backend/internal/email/usecase"
	"internmail-backend/pkg/ai"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
}

func NewEmailHandler(emailUsecase usecase.EmailUsecase) *EmailHandler {
	return &EmailHandler{
		emailUsecase: emailUsecase,
	}
}

// statusFor maps domain errors onto HTTP statuses. Upstream providers
// failing is a gateway problem, not an internal one.
func statusFor(err error) int {
	switch {
	case errors.Is(err, emaildomain.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, emaildomain.ErrNotFound):
		return http.StatusNotFound
	}

	var upstream *emaildomain.UpstreamError
	if errors.As(err, &upstream) {
		return http.StatusBadGateway
	}

	var svcErr *ai.ServiceError
	if errors.As(err, &svcErr) {
		if svcErr.Retriable {
			return http.StatusServiceUnavailable
		}
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func (h *EmailHandler) SyncInbox(c *gin.Context) {
	userID := c.GetString("userID")

	result, err := h.emailUsecase.SyncInbox(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EmailHandler) GetEmails(c *gin.Context) {
	userID := c.GetString("userID")

	emails, err := h.emailUsecase.ListEmails(userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"emails": emails, "total": len(emails)})
}

func (h *EmailHandler) GetEmailByID(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	email, err := h.emailUsecase.GetEmail(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, email)
}

func (h *EmailHandler) ClassifyEmail(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	result, err := h.emailUsecase.ClassifyEmail(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EmailHandler) ClassifyAll(c *gin.Context) {
	userID := c.GetString("userID")

	result, err := h.emailUsecase.ClassifyAll(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EmailHandler) DigestInbox(c *gin.Context) {
	userID := c.GetString("userID")

	summary, err := h.emailUsecase.DigestInbox(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, emaildto.SummaryResponse{Summary: summary})
}

func (h *EmailHandler) SummarizeEmail(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	summary, err := h.emailUsecase.SummarizeEmail(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, emaildto.SummaryResponse{Summary: summary})
}

func (h *EmailHandler) SuggestReplies(c *gin.Context) {
	var req emaildto.RepliesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.emailUsecase.SuggestReplies(c.Request.Context(), req.Subject, req.Body)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EmailHandler) RewriteTone(c *gin.Context) {
	var req emaildto.RewriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.emailUsecase.RewriteTone(c.Request.Context(), req.Text, req.Draft, req.Tone)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EmailHandler) AnalyzeSentiment(c *gin.Context) {
	var req emaildto.TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.emailUsecase.AnalyzeSentiment(c.Request.Context(), req.Text)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EmailHandler) ExtractActions(c *gin.Context) {
	var req emaildto.TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.emailUsecase.ExtractActions(c.Request.Context(), req.Text)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EmailHandler) GetStats(c *gin.Context) {
	userID := c.GetString("userID")

	stats, err := h.emailUsecase.Stats(userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
