package models

// Customer est le client Shopify tel que renvoyé par l'API Admin REST.
// On renvoie la forme brute au frontend (même contrat que l'ancien
// storefront), seuls les champs utilisés ici sont typés.
type Customer struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	State     string `json:"state,omitempty"`
}

// AccessToken est le customerAccessToken Shopify : credential opaque + date
// d'expiration RFC3339. On ne l'inspecte jamais, on le transmet tel quel.
type AccessToken struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   string `json:"expiresAt"`
}
