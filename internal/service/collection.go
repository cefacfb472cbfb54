package service

import (
	"context"
	"encoding/json"
	"log"
	"strconv"

	"lucira_back_end/internal/cache"
	"lucira_back_end/internal/models"
	"lucira_back_end/internal/shopify"
)

// shopifyAPI est la surface du client Shopify utilisée par les services.
// Interface pour pouvoir brancher un faux client dans les tests.
type shopifyAPI interface {
	StorefrontQuery(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error)
	AdminQuery(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error)
	AdminREST(ctx context.Context, method, path string, body interface{}, out interface{}) error
}

// sortConfig mappe les valeurs de tri du frontend vers les clés Shopify.
var sortConfig = map[string]struct {
	Key     string
	Reverse bool
}{
	"best_selling":   {"BEST_SELLING", false},
	"price_low_high": {"PRICE", false},
	"price_high_low": {"PRICE", true},
	"az":             {"TITLE", false},
}

const defaultPageSize = 20

// CollectionService orchestre la navigation de collection : une requête
// Storefront paginée pour les produits + facettes, et le compte total non
// filtré via le cache.
type CollectionService struct {
	shopify shopifyAPI
	cache   cache.Store
}

func NewCollectionService(api shopifyAPI, store cache.Store) *CollectionService {
	return &CollectionService{shopify: api, cache: store}
}

// PageParams sont les paramètres de navigation bruts reçus du frontend.
type PageParams struct {
	Handle     string
	Sort       string
	Cursor     string
	Limit      int
	RawFilters string // sélection JSON sérialisée, keyed par label de facette
}

// Page renvoie une page de collection normalisée. Sans handle : page vide
// immédiate, aucun appel amont.
func (s *CollectionService) Page(ctx context.Context, p PageParams) (models.Page, error) {
	if p.Handle == "" {
		return models.EmptyPage(), nil
	}

	sort, ok := sortConfig[p.Sort]
	if !ok {
		sort = sortConfig["best_selling"]
	}

	limit := p.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	variables := map[string]interface{}{
		"handle":  p.Handle,
		"first":   limit,
		"sortKey": sort.Key,
		"reverse": sort.Reverse,
		"filters": parseFilters(p.RawFilters),
	}
	if p.Cursor != "" {
		variables["after"] = p.Cursor
	} else {
		variables["after"] = nil
	}

	raw, err := s.shopify.StorefrontQuery(ctx, shopify.CollectionProductsQuery, variables)
	if err != nil {
		return models.Page{}, err
	}

	var data shopify.CollectionProductsData
	if err := json.Unmarshal(raw, &data); err != nil {
		return models.Page{}, err
	}
	if data.CollectionByHandle == nil {
		// handle inconnu côté Shopify : même réponse qu'une collection vide
		return models.EmptyPage(), nil
	}

	products := data.CollectionByHandle.Products

	page := models.Page{
		Products: make([]models.Product, 0, len(products.Edges)),
		Filters:  NormalizeFilters(products.Filters),
		PageInfo: models.PageInfo{
			HasNextPage: products.PageInfo.HasNextPage,
			EndCursor:   products.PageInfo.EndCursor,
		},
	}
	for _, edge := range products.Edges {
		page.Products = append(page.Products, NormalizeProduct(edge.Node))
	}

	// Le compte total ignore filtres/tri/pagination : il reflète toujours la
	// taille complète de la collection (clé de cache scopée par handle).
	total, err := s.totalProducts(ctx, p.Handle)
	if err != nil {
		return models.Page{}, err
	}
	page.TotalProducts = total

	return page, nil
}

// totalProducts compte les produits d'une collection via l'API Admin, avec
// mémoïsation 10 minutes par handle.
func (s *CollectionService) totalProducts(ctx context.Context, handle string) (int, error) {
	key := cache.CollectionCountKey(handle)

	if cached, ok := s.cache.Get(ctx, key); ok {
		if count, err := strconv.Atoi(cached); err == nil {
			return count, nil
		}
	}

	raw, err := s.shopify.AdminQuery(ctx, shopify.CollectionProductCountQuery, map[string]interface{}{
		"query": "handle:" + handle,
	})
	if err != nil {
		return 0, err
	}

	var data shopify.CollectionCountData
	if err := json.Unmarshal(raw, &data); err != nil {
		return 0, err
	}

	count := 0
	if len(data.Collections.Edges) > 0 {
		count = data.Collections.Edges[0].Node.ProductsCount.Count
	}

	s.cache.Set(ctx, key, strconv.Itoa(count), cache.CollectionCountTTL)
	return count, nil
}

// Filters renvoie les facettes disponibles d'une collection, mises en cache
// 10 minutes par handle.
func (s *CollectionService) Filters(ctx context.Context, handle string) (map[string][]models.FilterOption, error) {
	key := cache.FiltersKey(handle)

	if cached, ok := s.cache.Get(ctx, key); ok {
		var filters map[string][]models.FilterOption
		if json.Unmarshal([]byte(cached), &filters) == nil {
			return filters, nil
		}
	}

	raw, err := s.shopify.StorefrontQuery(ctx, shopify.CollectionFiltersQuery, map[string]interface{}{
		"handle": handle,
	})
	if err != nil {
		return nil, err
	}

	var data shopify.CollectionFiltersData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	filters := map[string][]models.FilterOption{}
	if data.CollectionByHandle != nil {
		filters = NormalizeFilters(data.CollectionByHandle.Products.Filters)
	}

	if encoded, err := json.Marshal(filters); err == nil {
		s.cache.Set(ctx, key, string(encoded), cache.FiltersTTL)
	}

	return filters, nil
}

// parseFilters aplatit la sélection du frontend ({label: [{input}, …]}) en
// liste de tokens ProductFilter opaques. Toute entrée malformée est ignorée
// plutôt que de faire échouer la requête.
func parseFilters(rawFilters string) []interface{} {
	active := []interface{}{}
	if rawFilters == "" {
		return active
	}

	var parsed map[string][]struct {
		Input interface{} `json:"input"`
	}
	if err := json.Unmarshal([]byte(rawFilters), &parsed); err != nil {
		log.Printf("⚠️ Filtres illisibles, ignorés: %v", err)
		return active
	}

	for _, group := range parsed {
		for _, opt := range group {
			if opt.Input == nil {
				continue
			}
			// Shopify renvoie input en string JSON : on le re-décode pour le
			// renvoyer en objet dans les variables GraphQL.
			if s, ok := opt.Input.(string); ok {
				var decoded interface{}
				if json.Unmarshal([]byte(s), &decoded) != nil {
					continue
				}
				active = append(active, decoded)
				continue
			}
			active = append(active, opt.Input)
		}
	}

	return active
}
