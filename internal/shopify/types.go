package shopify

import "encoding/json"

// Number décode un montant Shopify qui arrive tantôt en string ("129.0"),
// tantôt en nombre, tantôt null. Toute valeur absente ou malformée vaut 0 :
// ces shapes ont déjà été fetchées avec succès, on dégrade au lieu d'échouer.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = 0
	var f float64
	if json.Unmarshal(data, &f) == nil {
		*n = Number(f)
		return nil
	}
	var s string
	if json.Unmarshal(data, &s) == nil {
		var fs float64
		if json.Unmarshal([]byte(s), &fs) == nil {
			*n = Number(fs)
		}
	}
	return nil
}

// Shapes brutes de l'API Storefront, telles que renvoyées par
// CollectionProductsQuery / CollectionFiltersQuery.

type RawMoney struct {
	Amount Number `json:"amount"`
}

type RawImage struct {
	URL     string  `json:"url"`
	AltText *string `json:"altText"`
}

type RawSelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type RawVariant struct {
	ID                GID                 `json:"id"`
	Price             RawMoney            `json:"price"`
	CompareAtPrice    *RawMoney           `json:"compareAtPrice"`
	AvailableForSale  bool                `json:"availableForSale"`
	QuantityAvailable Number              `json:"quantityAvailable"`
	SelectedOptions   []RawSelectedOption `json:"selectedOptions"`
	Image             *RawImage           `json:"image"`
}

type RawProduct struct {
	ID            GID    `json:"id"`
	Title         string `json:"title"`
	Handle        string `json:"handle"`
	FeaturedImage *struct {
		URL string `json:"url"`
	} `json:"featuredImage"`
	Images struct {
		Edges []struct {
			Node RawImage `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node RawVariant `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

type RawFilterValue struct {
	Label string      `json:"label"`
	Count int         `json:"count"`
	Input interface{} `json:"input"`
}

type RawFilterGroup struct {
	ID     string           `json:"id"`
	Label  string           `json:"label"`
	Type   string           `json:"type"`
	Values []RawFilterValue `json:"values"`
}

type RawPageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// CollectionProductsData est le bloc data de CollectionProductsQuery.
type CollectionProductsData struct {
	CollectionByHandle *struct {
		Products struct {
			PageInfo RawPageInfo      `json:"pageInfo"`
			Filters  []RawFilterGroup `json:"filters"`
			Edges    []struct {
				Node RawProduct `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	} `json:"collectionByHandle"`
}

// CollectionFiltersData est le bloc data de CollectionFiltersQuery.
type CollectionFiltersData struct {
	CollectionByHandle *struct {
		Products struct {
			Filters []RawFilterGroup `json:"filters"`
		} `json:"products"`
	} `json:"collectionByHandle"`
}

// CollectionCountData est le bloc data de CollectionProductCountQuery (Admin).
type CollectionCountData struct {
	Collections struct {
		Edges []struct {
			Node struct {
				ProductsCount struct {
					Count int `json:"count"`
				} `json:"productsCount"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"collections"`
}

// TokenCreateData est le bloc data de CustomerAccessTokenCreateMutation.
type TokenCreateData struct {
	CustomerAccessTokenCreate struct {
		CustomerAccessToken *struct {
			AccessToken string `json:"accessToken"`
			ExpiresAt   string `json:"expiresAt"`
		} `json:"customerAccessToken"`
		CustomerUserErrors []struct {
			Message string `json:"message"`
		} `json:"customerUserErrors"`
	} `json:"customerAccessTokenCreate"`
}

// RawCart est le fragment cart commun aux deux mutations panier.
type RawCart struct {
	ID            string `json:"id"`
	TotalQuantity int    `json:"totalQuantity"`
}

type CartCreateData struct {
	CartCreate struct {
		Cart *RawCart `json:"cart"`
	} `json:"cartCreate"`
}

type CartBuyerIdentityUpdateData struct {
	CartBuyerIdentityUpdate struct {
		Cart *RawCart `json:"cart"`
	} `json:"cartBuyerIdentityUpdate"`
}
