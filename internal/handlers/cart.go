package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lucira_back_end/internal/service"
)

type CartHandler struct {
	svc *service.CartService
}

func NewCartHandler(svc *service.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

// 🟢 POST /api/cart/create
// Le token vient du body, ou du cookie de session à défaut.
func (h *CartHandler) Create(c *gin.Context) {
	var input struct {
		CustomerAccessToken string `json:"customerAccessToken"`
	}
	_ = c.ShouldBindJSON(&input) // body optionnel

	token := input.CustomerAccessToken
	if token == "" {
		token, _ = c.Cookie(sessionCookie)
	}
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	cart, err := h.svc.Create(c.Request.Context(), token)
	if err != nil {
		log.Printf("❌ Échec création panier: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create cart failed"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// 🟢 POST /api/cart/attach
// Rattache un panier invité au customer : cartId et token explicites.
func (h *CartHandler) Attach(c *gin.Context) {
	var input struct {
		CartID              string `json:"cartId"`
		CustomerAccessToken string `json:"customerAccessToken"`
	}
	if err := c.ShouldBindJSON(&input); err != nil ||
		input.CartID == "" || input.CustomerAccessToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
		return
	}

	cart, err := h.svc.Attach(c.Request.Context(), input.CartID, input.CustomerAccessToken)
	if err != nil {
		log.Printf("❌ Échec rattachement panier: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Attach cart failed"})
		return
	}

	c.JSON(http.StatusOK, cart)
}
