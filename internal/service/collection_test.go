package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"lucira_back_end/internal/cache"
)

// fakeShopify implémente shopifyAPI à la main et compte les appels.
type fakeShopify struct {
	storefrontFn    func(query string, variables map[string]interface{}) (json.RawMessage, error)
	adminFn         func(query string, variables map[string]interface{}) (json.RawMessage, error)
	restFn          func(method, path string, body, out interface{}) error
	storefrontCalls int
	adminCalls      int
}

func (f *fakeShopify) StorefrontQuery(_ context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	f.storefrontCalls++
	return f.storefrontFn(query, variables)
}

func (f *fakeShopify) AdminQuery(_ context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	f.adminCalls++
	return f.adminFn(query, variables)
}

func (f *fakeShopify) AdminREST(_ context.Context, method, path string, body, out interface{}) error {
	if f.restFn == nil {
		return errors.New("AdminREST inattendu")
	}
	return f.restFn(method, path, body, out)
}

const collectionPageData = `{
	"collectionByHandle": {
		"products": {
			"pageInfo": {"hasNextPage": true, "endCursor": "CURSOR"},
			"filters": [],
			"edges": [
				{"node": {"id": "gid://shopify/Product/1", "title": "A", "handle": "a",
					"variants": {"edges": [{"node": {"id": "gid://shopify/ProductVariant/1", "price": {"amount": "10.0"}, "availableForSale": true, "quantityAvailable": 1}}]}}},
				{"node": {"id": "gid://shopify/Product/2", "title": "B", "handle": "b",
					"variants": {"edges": [{"node": {"id": "gid://shopify/ProductVariant/2", "price": {"amount": "20.0"}, "availableForSale": true, "quantityAvailable": 1}}]}}}
			]
		}
	}
}`

const countData = `{"collections": {"edges": [{"node": {"productsCount": {"count": 42}}}]}}`

func newCollectionFake() *fakeShopify {
	return &fakeShopify{
		storefrontFn: func(string, map[string]interface{}) (json.RawMessage, error) {
			return json.RawMessage(collectionPageData), nil
		},
		adminFn: func(string, map[string]interface{}) (json.RawMessage, error) {
			return json.RawMessage(countData), nil
		},
	}
}

func TestPageWithoutHandleSkipsUpstream(t *testing.T) {
	fake := newCollectionFake()
	svc := NewCollectionService(fake, cache.NewMemoryStore())

	page, err := svc.Page(context.Background(), PageParams{})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(page.Products) != 0 || page.TotalProducts != 0 {
		t.Errorf("page vide attendue: %+v", page)
	}
	if fake.storefrontCalls != 0 || fake.adminCalls != 0 {
		t.Error("aucun appel amont attendu sans handle")
	}
}

func TestPageAssemblesResult(t *testing.T) {
	fake := newCollectionFake()
	var sentVars map[string]interface{}
	inner := fake.storefrontFn
	fake.storefrontFn = func(query string, variables map[string]interface{}) (json.RawMessage, error) {
		sentVars = variables
		return inner(query, variables)
	}
	svc := NewCollectionService(fake, cache.NewMemoryStore())

	page, err := svc.Page(context.Background(), PageParams{Handle: "rings", Sort: "az", Limit: 2})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}

	if len(page.Products) != 2 {
		t.Fatalf("produits = %d, attendu 2", len(page.Products))
	}
	if page.Products[0].Title != "A" || page.Products[1].Title != "B" {
		t.Errorf("ordre des produits = %q, %q", page.Products[0].Title, page.Products[1].Title)
	}
	if !page.PageInfo.HasNextPage || page.PageInfo.EndCursor == nil || *page.PageInfo.EndCursor != "CURSOR" {
		t.Errorf("pageInfo = %+v", page.PageInfo)
	}
	if page.TotalProducts != 42 {
		t.Errorf("totalProducts = %d", page.TotalProducts)
	}

	// az → TITLE sans reverse, limit transmis tel quel
	if sentVars["sortKey"] != "TITLE" || sentVars["reverse"] != false {
		t.Errorf("tri envoyé = %v / %v", sentVars["sortKey"], sentVars["reverse"])
	}
	if sentVars["first"] != 2 {
		t.Errorf("first = %v", sentVars["first"])
	}
}

func TestPageUnknownSortFallsBackToBestSelling(t *testing.T) {
	fake := newCollectionFake()
	var sentVars map[string]interface{}
	inner := fake.storefrontFn
	fake.storefrontFn = func(query string, variables map[string]interface{}) (json.RawMessage, error) {
		sentVars = variables
		return inner(query, variables)
	}
	svc := NewCollectionService(fake, cache.NewMemoryStore())

	if _, err := svc.Page(context.Background(), PageParams{Handle: "rings", Sort: "n-importe-quoi"}); err != nil {
		t.Fatalf("Page: %v", err)
	}
	if sentVars["sortKey"] != "BEST_SELLING" {
		t.Errorf("sortKey = %v, attendu BEST_SELLING", sentVars["sortKey"])
	}
	if sentVars["first"] != 20 {
		t.Errorf("first = %v, attendu la taille de page par défaut", sentVars["first"])
	}
}

func TestTotalProductsCachedPerHandle(t *testing.T) {
	fake := newCollectionFake()
	svc := NewCollectionService(fake, cache.NewMemoryStore())
	ctx := context.Background()

	// deux requêtes avec filtres/tris différents : un seul appel de comptage
	if _, err := svc.Page(ctx, PageParams{Handle: "rings", Sort: "az"}); err != nil {
		t.Fatalf("Page: %v", err)
	}
	page, err := svc.Page(ctx, PageParams{Handle: "rings", Sort: "price_high_low",
		RawFilters: `{"Color":[{"input":{"variantOption":{"name":"color","value":"Yellow"}}}]}`})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}

	if fake.adminCalls != 1 {
		t.Errorf("appels de comptage = %d, attendu 1 (cache par handle)", fake.adminCalls)
	}
	if page.TotalProducts != 42 {
		t.Errorf("totalProducts doit ignorer filtres et tri: %d", page.TotalProducts)
	}

	// autre handle → nouvel appel
	if _, err := svc.Page(ctx, PageParams{Handle: "necklaces"}); err != nil {
		t.Fatalf("Page: %v", err)
	}
	if fake.adminCalls != 2 {
		t.Errorf("appels de comptage = %d, attendu 2", fake.adminCalls)
	}
}

func TestTotalProductsRefetchedAfterExpiry(t *testing.T) {
	fake := newCollectionFake()
	store := cache.NewMemoryStore()
	svc := NewCollectionService(fake, store)
	ctx := context.Background()

	if _, err := svc.Page(ctx, PageParams{Handle: "rings"}); err != nil {
		t.Fatalf("Page: %v", err)
	}
	// on force l'expiration au lieu d'attendre 10 minutes
	store.Delete(ctx, cache.CollectionCountKey("rings"))

	if _, err := svc.Page(ctx, PageParams{Handle: "rings"}); err != nil {
		t.Fatalf("Page: %v", err)
	}
	if fake.adminCalls != 2 {
		t.Errorf("appels de comptage = %d, attendu 2 après expiration", fake.adminCalls)
	}
}

func TestPageUpstreamFailure(t *testing.T) {
	fake := newCollectionFake()
	fake.storefrontFn = func(string, map[string]interface{}) (json.RawMessage, error) {
		return nil, errors.New("boom")
	}
	svc := NewCollectionService(fake, cache.NewMemoryStore())

	if _, err := svc.Page(context.Background(), PageParams{Handle: "rings"}); err == nil {
		t.Fatal("échec amont attendu, pas de dégradation partielle")
	}
}

func TestPageUnknownCollection(t *testing.T) {
	fake := newCollectionFake()
	fake.storefrontFn = func(string, map[string]interface{}) (json.RawMessage, error) {
		return json.RawMessage(`{"collectionByHandle": null}`), nil
	}
	svc := NewCollectionService(fake, cache.NewMemoryStore())

	page, err := svc.Page(context.Background(), PageParams{Handle: "inconnue"})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(page.Products) != 0 {
		t.Errorf("collection inconnue = page vide, obtenu %+v", page)
	}
}

func TestFiltersCached(t *testing.T) {
	filtersData := `{
		"collectionByHandle": {
			"products": {
				"filters": [
					{"id": "f.color", "label": "Color", "type": "LIST",
						"values": [{"label": "Yellow", "count": 3, "input": "tok"}]}
				]
			}
		}
	}`
	fake := newCollectionFake()
	fake.storefrontFn = func(string, map[string]interface{}) (json.RawMessage, error) {
		return json.RawMessage(filtersData), nil
	}
	svc := NewCollectionService(fake, cache.NewMemoryStore())
	ctx := context.Background()

	first, err := svc.Filters(ctx, "rings")
	if err != nil {
		t.Fatalf("Filters: %v", err)
	}
	second, err := svc.Filters(ctx, "rings")
	if err != nil {
		t.Fatalf("Filters: %v", err)
	}

	if fake.storefrontCalls != 1 {
		t.Errorf("appels storefront = %d, attendu 1 (cache)", fake.storefrontCalls)
	}
	if len(first["Color"]) != 1 || len(second["Color"]) != 1 {
		t.Errorf("facettes = %v / %v", first, second)
	}
}
