package delivery

import (
	"errors"
	"net/http"

	"internmail-backend/internal/internship/usecase"

	"github.com/gin-gonic/gin"
)

type InternshipHandler struct {
	internshipUsecase usecase.InternshipUsecase
}

func NewInternshipHandler(internshipUsecase usecase.InternshipUsecase) *InternshipHandler {
	return &InternshipHandler{
		internshipUsecase: internshipUsecase,
	}
}

func (h *InternshipHandler) List(c *gin.Context) {
	userID := c.GetString("userID")

	records, err := h.internshipUsecase.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"internships": records, "total": len(records)})
}

func (h *InternshipHandler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var req usecase.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.internshipUsecase.Create(userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *InternshipHandler) Update(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	var req usecase.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.internshipUsecase.Update(userID, id, req)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "internship not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *InternshipHandler) Delete(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	if err := h.internshipUsecase.Delete(userID, id); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "internship not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "internship deleted"})
}

func (h *InternshipHandler) ClearAll(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.internshipUsecase.ClearAll(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "all internships cleared"})
}
