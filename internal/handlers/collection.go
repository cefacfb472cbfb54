package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lucira_back_end/internal/models"
	"lucira_back_end/internal/service"
)

type CollectionHandler struct {
	svc *service.CollectionService
}

func NewCollectionHandler(svc *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{svc: svc}
}

// 🟢 GET /api/collection?handle=&sort=&cursor=&limit=&filters=
func (h *CollectionHandler) Page(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	page, err := h.svc.Page(c.Request.Context(), service.PageParams{
		Handle:     c.Query("handle"),
		Sort:       c.Query("sort"),
		Cursor:     c.Query("cursor"),
		Limit:      limit,
		RawFilters: c.Query("filters"),
	})
	if err != nil {
		log.Printf("❌ Échec page collection %q: %v", c.Query("handle"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// 🟢 GET /api/collection/filters?handle=
// Les facettes sont un enrichissement non critique : tout échec dégrade en
// {filters:{}} avec un 200, jamais d'erreur remontée au frontend.
func (h *CollectionHandler) Filters(c *gin.Context) {
	handle := c.Query("handle")
	if handle == "" {
		c.JSON(http.StatusOK, gin.H{"filters": map[string][]models.FilterOption{}})
		return
	}

	filters, err := h.svc.Filters(c.Request.Context(), handle)
	if err != nil {
		log.Printf("⚠️ Facettes indisponibles pour %q: %v", handle, err)
		c.JSON(http.StatusOK, gin.H{"filters": map[string][]models.FilterOption{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"filters": filters})
}

// 🟢 GET /api/products?handle=
// Ancienne URL produits : redirection vers la page collection.
func (h *CollectionHandler) ProductsRedirect(c *gin.Context) {
	handle := c.Query("handle")
	if handle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing handle"})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, "/collections/"+handle)
}
