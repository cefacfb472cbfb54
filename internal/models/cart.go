package models

// Cart est le résumé de panier renvoyé après création ou rattachement.
type Cart struct {
	ID            string `json:"id"`
	TotalQuantity int    `json:"totalQuantity"`
}
