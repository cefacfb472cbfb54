package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"lucira_back_end/internal/config"
	"lucira_back_end/internal/upstream"
)

const apiVersion = "2024-10"

// Client parle aux deux APIs GraphQL de Shopify (Storefront et Admin) plus
// à l'API Admin REST (customers). Les URLs sont exposées pour pouvoir
// pointer vers un serveur de test.
type Client struct {
	Shop            string
	StorefrontToken string
	AdminToken      string

	StorefrontURL string // POST graphql.json (Storefront)
	AdminURL      string // POST graphql.json (Admin)
	AdminRESTBase string // préfixe /admin/api/<version> (REST)

	HTTP *http.Client
}

func NewClient(cfg *config.Config) *Client {
	base := fmt.Sprintf("https://%s.myshopify.com", cfg.Shop)
	return &Client{
		Shop:            cfg.Shop,
		StorefrontToken: cfg.StorefrontToken,
		AdminToken:      cfg.AdminToken,
		StorefrontURL:   fmt.Sprintf("%s/api/%s/graphql.json", base, apiVersion),
		AdminURL:        fmt.Sprintf("%s/admin/api/%s/graphql.json", base, apiVersion),
		AdminRESTBase:   fmt.Sprintf("%s/admin/api/%s", base, apiVersion),
		HTTP:            http.DefaultClient,
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// StorefrontQuery exécute une requête GraphQL sur l'API Storefront.
func (c *Client) StorefrontQuery(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	if c.StorefrontToken == "" {
		return nil, &upstream.ErrNotConfigured{Service: "shopify", Name: "STOREFRONT_TOKEN"}
	}
	headers := map[string]string{"X-Shopify-Storefront-Access-Token": c.StorefrontToken}
	return c.graphql(ctx, "shopify-storefront", c.StorefrontURL, headers, query, variables)
}

// AdminQuery exécute une requête GraphQL sur l'API Admin.
func (c *Client) AdminQuery(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	if c.AdminToken == "" {
		return nil, &upstream.ErrNotConfigured{Service: "shopify", Name: "SHOPIFY_ADMIN_TOKEN"}
	}
	headers := map[string]string{"X-Shopify-Access-Token": c.AdminToken}
	return c.graphql(ctx, "shopify-admin", c.AdminURL, headers, query, variables)
}

func (c *Client) graphql(ctx context.Context, service, url string, headers map[string]string, query string, variables map[string]interface{}) (json.RawMessage, error) {
	var res graphqlResponse
	err := upstream.DoJSON(ctx, c.HTTP, service, http.MethodPost, url, headers,
		graphqlRequest{Query: query, Variables: variables}, &res)
	if err != nil {
		return nil, err
	}

	// Shopify renvoie 200 avec un tableau errors : à traiter comme un échec,
	// les données partielles ne sont pas utilisables.
	if len(res.Errors) > 0 {
		log.Printf("❌ [%s] erreurs GraphQL: %s", service, res.Errors[0].Message)
		return nil, &upstream.Error{Service: service, Status: http.StatusOK, Message: res.Errors[0].Message}
	}

	return res.Data, nil
}

// AdminREST exécute un appel Admin REST (customers.json etc.). path commence
// par "/".
func (c *Client) AdminREST(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if c.AdminToken == "" {
		return &upstream.ErrNotConfigured{Service: "shopify", Name: "SHOPIFY_ADMIN_TOKEN"}
	}
	headers := map[string]string{"X-Shopify-Access-Token": c.AdminToken}
	return upstream.DoJSON(ctx, c.HTTP, "shopify-admin-rest", method, c.AdminRESTBase+path, headers, body, out)
}
