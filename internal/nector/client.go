package nector

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"

	"lucira_back_end/internal/config"
	"lucira_back_end/internal/upstream"
)

const defaultBaseURL = "https://platform.nector.io"

// Client récupère les statistiques d'avis produits depuis Nector.
type Client struct {
	APIKey      string
	WorkspaceID string
	BaseURL     string
	HTTP        *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		APIKey:      cfg.NectorAPIKey,
		WorkspaceID: cfg.NectorWorkspaceID,
		BaseURL:     defaultBaseURL,
		HTTP:        http.DefaultClient,
	}
}

// Summary est l'agrégat renvoyé au frontend : nombre d'avis + note moyenne.
type Summary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

type reviewsResponse struct {
	Data struct {
		Count int `json:"count"`
		Stats []struct {
			Rating float64 `json:"rating"`
			Count  float64 `json:"count"`
		} `json:"stats"`
	} `json:"data"`
}

// ProductReviews renvoie l'agrégat d'avis d'un produit. Les avis sont un
// enrichissement non critique : tout échec dégrade en {0, 0} plutôt qu'en
// erreur.
func (c *Client) ProductReviews(ctx context.Context, productID string) Summary {
	if productID == "" || c.APIKey == "" || c.WorkspaceID == "" {
		return Summary{}
	}

	endpoint := fmt.Sprintf("%s/api/v2/merchant/reviews?reference_product_id=%s",
		c.BaseURL, url.QueryEscape(productID))
	headers := map[string]string{
		"x-apikey":      c.APIKey,
		"x-workspaceid": c.WorkspaceID,
		"x-source":      "web",
	}

	var res reviewsResponse
	if err := upstream.DoJSON(ctx, c.HTTP, "nector", http.MethodGet, endpoint, headers, nil, &res); err != nil {
		log.Printf("⚠️ [nector] avis indisponibles pour %s: %v", productID, err)
		return Summary{}
	}

	var total, ratingCount float64
	for _, s := range res.Data.Stats {
		total += s.Rating * s.Count
		ratingCount += s.Count
	}

	summary := Summary{Count: res.Data.Count}
	if ratingCount > 0 {
		// moyenne arrondie à 1 décimale, comme affichée côté frontend
		summary.Average = math.Round(total/ratingCount*10) / 10
	}
	return summary
}
