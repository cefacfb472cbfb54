package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lucira_back_end/internal/service"
)

type ReviewHandler struct {
	svc *service.ReviewService
}

func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// 🟢 GET /api/reviews?productId=
func (h *ReviewHandler) ProductReviews(c *gin.Context) {
	productID := c.Query("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return
	}

	c.JSON(http.StatusOK, h.svc.ProductReviews(c.Request.Context(), productID))
}
