package models

// Variant est une déclinaison de produit aplatie pour le frontend.
// InStock = availableForSale ET quantité > 0.
type Variant struct {
	ID           string   `json:"id"`
	Size         *string  `json:"size"`
	Color        *string  `json:"color"`
	Price        float64  `json:"price"`
	ComparePrice *float64 `json:"compare_price"`
	InStock      bool     `json:"inStock"`
	Image        *string  `json:"image"`
	AltText      string   `json:"altText"`
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

// Product est la forme UI d'un produit : les champs prix/image/couleur sont
// dérivés de la variante sélectionnée (première en stock, sinon la première).
type Product struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Handle        string    `json:"handle"`
	Images        []Image   `json:"images"`
	Price         float64   `json:"price"`
	ComparePrice  *float64  `json:"compare_price"`
	SelectedColor *string   `json:"selectedColor"`
	Colors        []string  `json:"colors"`
	Image         *string   `json:"image"`
	AltText       string    `json:"altText"`
	Variants      []Variant `json:"variants"`
}

// FilterOption est une valeur sélectionnable d'une facette ; Input est le
// token opaque que Shopify attend en retour pour appliquer le filtre.
type FilterOption struct {
	Label string      `json:"label"`
	Count int         `json:"count"`
	Input interface{} `json:"input"`
}

type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// Page est la réponse d'une page de collection. TotalProducts reflète
// toujours la taille non filtrée de la collection.
type Page struct {
	Products      []Product                 `json:"products"`
	Filters       map[string][]FilterOption `json:"filters"`
	PageInfo      PageInfo                  `json:"pageInfo"`
	TotalProducts int                       `json:"totalProducts"`
}

// EmptyPage est la réponse renvoyée sans handle : pas d'appel amont, pas
// d'erreur.
func EmptyPage() Page {
	return Page{
		Products: []Product{},
		Filters:  map[string][]FilterOption{},
	}
}
