package service

import (
	"encoding/json"
	"reflect"
	"testing"

	"lucira_back_end/internal/shopify"
)

func rawVariant(t *testing.T, data string) shopify.RawVariant {
	t.Helper()
	var v shopify.RawVariant
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		t.Fatalf("décodage variante: %v", err)
	}
	return v
}

func TestNormalizeVariant(t *testing.T) {
	v := NormalizeVariant(rawVariant(t, `{
		"id": "gid://shopify/ProductVariant/456",
		"price": {"amount": "129.5"},
		"compareAtPrice": {"amount": "199.0"},
		"availableForSale": true,
		"quantityAvailable": 3,
		"selectedOptions": [
			{"name": "SIZE", "value": "M"},
			{"name": "Color", "value": "Rose Gold"}
		],
		"image": {"url": "https://cdn/img.jpg", "altText": "bague"}
	}`))

	if v.ID != "456" {
		t.Errorf("ID = %q, attendu segment final du GID", v.ID)
	}
	if v.Size == nil || *v.Size != "M" {
		t.Errorf("Size = %v, le nom d'option est insensible à la casse", v.Size)
	}
	if v.Color == nil || *v.Color != "Rose Gold" {
		t.Errorf("Color = %v", v.Color)
	}
	if v.Price != 129.5 {
		t.Errorf("Price = %v", v.Price)
	}
	if v.ComparePrice == nil || *v.ComparePrice != 199.0 {
		t.Errorf("ComparePrice = %v", v.ComparePrice)
	}
	if !v.InStock {
		t.Error("InStock attendu: disponible et quantité > 0")
	}
	if v.Image == nil || *v.Image != "https://cdn/img.jpg" || v.AltText != "bague" {
		t.Errorf("Image = %v / AltText = %q", v.Image, v.AltText)
	}
}

func TestNormalizeVariantOutOfStock(t *testing.T) {
	// disponible mais quantité nulle → hors stock
	v := NormalizeVariant(rawVariant(t, `{
		"id": "gid://shopify/ProductVariant/1",
		"price": {"amount": "10.0"},
		"availableForSale": true,
		"quantityAvailable": 0
	}`))
	if v.InStock {
		t.Error("quantité 0 doit donner InStock=false")
	}

	// quantité positive mais indisponible → hors stock
	v = NormalizeVariant(rawVariant(t, `{
		"id": "gid://shopify/ProductVariant/2",
		"price": {"amount": "10.0"},
		"availableForSale": false,
		"quantityAvailable": 5
	}`))
	if v.InStock {
		t.Error("availableForSale=false doit donner InStock=false")
	}
}

func TestNormalizeVariantDegradesGracefully(t *testing.T) {
	// champs numériques absents ou malformés → 0, jamais d'erreur
	v := NormalizeVariant(rawVariant(t, `{
		"id": "simple-id",
		"price": {"amount": "pas-un-nombre"}
	}`))
	if v.Price != 0 {
		t.Errorf("prix malformé = %v, attendu 0", v.Price)
	}
	if v.ComparePrice != nil {
		t.Errorf("ComparePrice = %v, attendu nil", v.ComparePrice)
	}
	if v.ID != "simple-id" {
		t.Errorf("ID sans '/' = %q, attendu inchangé", v.ID)
	}
	if v.Image != nil || v.AltText != "" {
		t.Error("image absente doit rester nil")
	}
}

func rawProduct(t *testing.T, data string) shopify.RawProduct {
	t.Helper()
	var p shopify.RawProduct
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		t.Fatalf("décodage produit: %v", err)
	}
	return p
}

const productJSON = `{
	"id": "gid://shopify/Product/123",
	"title": "Bague Aria",
	"handle": "bague-aria",
	"featuredImage": {"url": "https://cdn/featured.jpg"},
	"images": {"edges": [
		{"node": {"url": "https://cdn/1.jpg", "altText": "vue 1"}},
		{"node": {"url": "https://cdn/2.jpg", "altText": null}}
	]},
	"variants": {"edges": [
		{"node": {
			"id": "gid://shopify/ProductVariant/1",
			"price": {"amount": "99.0"},
			"availableForSale": false,
			"quantityAvailable": 0,
			"selectedOptions": [{"name": "Color", "value": "White Gold"}],
			"image": {"url": "https://cdn/v1.jpg", "altText": "blanc"}
		}},
		{"node": {
			"id": "gid://shopify/ProductVariant/2",
			"price": {"amount": "119.0"},
			"compareAtPrice": {"amount": "149.0"},
			"availableForSale": true,
			"quantityAvailable": 2,
			"selectedOptions": [{"name": "Color", "value": "18K Yellow Gold"}],
			"image": {"url": "https://cdn/v2.jpg", "altText": "jaune"}
		}}
	]}
}`

func TestNormalizeProductSelectsFirstInStockVariant(t *testing.T) {
	p := NormalizeProduct(rawProduct(t, productJSON))

	// la première variante est hors stock : la sélection tombe sur la seconde
	if p.Price != 119.0 {
		t.Errorf("Price = %v, attendu celui de la variante en stock", p.Price)
	}
	if p.SelectedColor == nil || *p.SelectedColor != "18K Yellow Gold" {
		t.Errorf("SelectedColor = %v", p.SelectedColor)
	}
	if p.Image == nil || *p.Image != "https://cdn/v2.jpg" {
		t.Errorf("Image = %v, attendu l'image de la variante sélectionnée", p.Image)
	}

	// la sélection correspond exactement à un élément de Variants
	found := false
	for _, v := range p.Variants {
		if v.Price == p.Price && v.Image != nil && *v.Image == *p.Image {
			found = true
		}
	}
	if !found {
		t.Error("les champs dérivés ne correspondent à aucune variante")
	}

	if !reflect.DeepEqual(p.Colors, []string{"yellow", "white"}) {
		t.Errorf("Colors = %v, attendu familles dédupliquées en ordre fixe", p.Colors)
	}
	if p.ID != "123" || p.Handle != "bague-aria" {
		t.Errorf("ID/Handle = %q/%q", p.ID, p.Handle)
	}
	if len(p.Images) != 2 || p.Images[1].AltText != "" {
		t.Errorf("Images = %v", p.Images)
	}
}

func TestNormalizeProductAllOutOfStockFallsBackToFirst(t *testing.T) {
	p := NormalizeProduct(rawProduct(t, `{
		"id": "gid://shopify/Product/9",
		"title": "T",
		"handle": "t",
		"variants": {"edges": [
			{"node": {"id": "gid://shopify/ProductVariant/1", "price": {"amount": "10.0"}, "availableForSale": false, "quantityAvailable": 0}},
			{"node": {"id": "gid://shopify/ProductVariant/2", "price": {"amount": "20.0"}, "availableForSale": false, "quantityAvailable": 0}}
		]}
	}`))

	if p.Price != 10.0 {
		t.Errorf("Price = %v, attendu la première variante faute de stock", p.Price)
	}
}

func TestNormalizeProductFeaturedImageFallback(t *testing.T) {
	p := NormalizeProduct(rawProduct(t, `{
		"id": "gid://shopify/Product/9",
		"title": "T",
		"handle": "t",
		"featuredImage": {"url": "https://cdn/featured.jpg"},
		"variants": {"edges": [
			{"node": {"id": "gid://shopify/ProductVariant/1", "price": {"amount": "10.0"}, "availableForSale": true, "quantityAvailable": 1}}
		]}
	}`))

	if p.Image == nil || *p.Image != "https://cdn/featured.jpg" {
		t.Errorf("Image = %v, attendu repli sur featuredImage", p.Image)
	}
}

func TestNormalizeProductNoVariants(t *testing.T) {
	p := NormalizeProduct(rawProduct(t, `{
		"id": "gid://shopify/Product/9",
		"title": "T",
		"handle": "t"
	}`))

	if p.Price != 0 || p.SelectedColor != nil || len(p.Variants) != 0 {
		t.Errorf("produit sans variantes doit dégrader à zéro: %+v", p)
	}
}

func TestNormalizeFilters(t *testing.T) {
	groups := []shopify.RawFilterGroup{
		{
			ID:    "filter.v.option.color",
			Label: "Color",
			Type:  "LIST",
			Values: []shopify.RawFilterValue{
				{Label: "Yellow", Count: 4, Input: `{"variantOption":{"name":"color","value":"Yellow"}}`},
				{Label: "Rose", Count: 0, Input: `{}`}, // count 0 → éliminée
			},
		},
		{
			ID:    "filter.v.price",
			Label: "Price",
			Type:  "PRICE_RANGE", // groupe entier éliminé
			Values: []shopify.RawFilterValue{
				{Label: "0-100", Count: 7, Input: `{}`},
			},
		},
		{
			ID:   "filter.p.type",
			Type: "LIST", // label absent → clé = id
			Values: []shopify.RawFilterValue{
				{Label: "Rings", Count: 2, Input: `{}`},
			},
		},
		{
			ID:    "filter.v.option.size",
			Label: "Size",
			Type:  "LIST",
			Values: []shopify.RawFilterValue{
				{Label: "M", Count: 0, Input: `{}`}, // groupe vidé → éliminé
			},
		},
	}

	filters := NormalizeFilters(groups)

	if _, ok := filters["Price"]; ok {
		t.Error("PRICE_RANGE ne doit jamais apparaître")
	}
	if _, ok := filters["Size"]; ok {
		t.Error("groupe sans option valable doit disparaître")
	}
	if len(filters["Color"]) != 1 || filters["Color"][0].Label != "Yellow" {
		t.Errorf("Color = %v", filters["Color"])
	}
	if len(filters["filter.p.type"]) != 1 {
		t.Errorf("le groupe sans label doit être keyé par id: %v", filters)
	}
}

func TestNormalizeFiltersIdempotent(t *testing.T) {
	groups := []shopify.RawFilterGroup{
		{
			Label: "Color",
			Type:  "LIST",
			Values: []shopify.RawFilterValue{
				{Label: "Yellow", Count: 4, Input: "tok"},
				{Label: "White", Count: 2, Input: "tok2"},
			},
		},
	}

	once := NormalizeFilters(groups)

	// on reconstruit des groupes depuis la sortie et on renormalise
	var again []shopify.RawFilterGroup
	for label, options := range once {
		group := shopify.RawFilterGroup{Label: label, Type: "LIST"}
		for _, o := range options {
			group.Values = append(group.Values, shopify.RawFilterValue{
				Label: o.Label, Count: o.Count, Input: o.Input,
			})
		}
		again = append(again, group)
	}

	twice := NormalizeFilters(again)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("la normalisation n'est pas idempotente:\n%v\n%v", once, twice)
	}
}

func TestParseFilters(t *testing.T) {
	raw := `{"Color":[{"label":"Yellow","count":4,"input":"{\"variantOption\":{\"name\":\"color\",\"value\":\"Yellow\"}}"}]}`
	active := parseFilters(raw)
	if len(active) != 1 {
		t.Fatalf("attendu 1 filtre actif, obtenu %d", len(active))
	}
	// l'input string JSON doit être re-décodé en objet
	obj, ok := active[0].(map[string]interface{})
	if !ok {
		t.Fatalf("filtre actif = %T, attendu objet décodé", active[0])
	}
	if _, ok := obj["variantOption"]; !ok {
		t.Errorf("token décodé = %v", obj)
	}
}

func TestParseFiltersMalformed(t *testing.T) {
	if got := parseFilters(""); len(got) != 0 {
		t.Errorf("filtres vides = %v", got)
	}
	if got := parseFilters("{pas du json"); len(got) != 0 {
		t.Errorf("filtres malformés doivent donner une liste vide, obtenu %v", got)
	}
	if got := parseFilters(`{"Color":[{"input":null}]}`); len(got) != 0 {
		t.Errorf("input null ignoré, obtenu %v", got)
	}
	if got := parseFilters(`{"Color":[{"input":"{invalide"}]}`); len(got) != 0 {
		t.Errorf("input string non-JSON ignoré, obtenu %v", got)
	}
}
