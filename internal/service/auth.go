package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"lucira_back_end/internal/models"
	"lucira_back_end/internal/shopify"
	"lucira_back_end/internal/utils"
)

// ErrInvalidOTP recouvre tout échec de vérification OTP côté provider :
// code faux, expiré, ou erreur MSG91. Traduit en 400 par le handler.
var ErrInvalidOTP = errors.New("OTP invalide")

// otpAPI est la surface MSG91 utilisée par le service (fake dans les tests).
type otpAPI interface {
	SendOTP(ctx context.Context, mobile string) error
	VerifyOTP(ctx context.Context, mobile, otp string) error
}

// AuthService orchestre le login sans mot de passe : OTP MSG91 + customer
// Shopify. Le storefront n'a pas de login par mot de passe, donc à chaque
// login OTP on fait tourner le mot de passe Shopify du client vers une
// valeur aléatoire et on crée un customerAccessToken avec.
type AuthService struct {
	shopify shopifyAPI
	otp     otpAPI
}

func NewAuthService(api shopifyAPI, otp otpAPI) *AuthService {
	return &AuthService{shopify: api, otp: otp}
}

// SendOTP normalise le numéro et déclenche l'envoi du code.
func (s *AuthService) SendOTP(ctx context.Context, rawMobile string) error {
	return s.otp.SendOTP(ctx, utils.FormatMobile(rawMobile))
}

// VerifyResult est l'issue d'une vérification d'OTP réussie. Un mobile sans
// customer Shopify correspondant n'est pas une erreur : RegisterRequired.
type VerifyResult struct {
	RegisterRequired bool
	Customer         *models.Customer
	Token            *models.AccessToken
}

// VerifyOTP vérifie le code puis loge le client : recherche par téléphone,
// rotation du mot de passe, création du token.
//
// NOTE: si la création du token échoue après la rotation, le client reste
// avec un mot de passe inconnu — pas de transaction compensatoire côté
// Shopify. Comportement historique du storefront, les deux étapes sont
// loggées séparément pour diagnostiquer ce cas.
func (s *AuthService) VerifyOTP(ctx context.Context, rawMobile, otp string) (*VerifyResult, error) {
	mobile := utils.FormatMobile(rawMobile)

	if err := s.otp.VerifyOTP(ctx, mobile, otp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOTP, err)
	}

	customer, err := s.findCustomerByPhone(ctx, mobile)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		log.Printf("ℹ️ Aucun customer pour %s → inscription requise", mobile)
		return &VerifyResult{RegisterRequired: true}, nil
	}

	password, err := utils.GeneratePassword()
	if err != nil {
		return nil, err
	}

	if err := s.rotatePassword(ctx, customer.ID, password); err != nil {
		return nil, err
	}

	token, err := s.createAccessToken(ctx, customer.Email, password)
	if err != nil {
		return nil, err
	}

	return &VerifyResult{Customer: customer, Token: token}, nil
}

// Register crée le customer Shopify puis tente de le loger dans la foulée.
// L'échec du token n'annule pas l'inscription : on renvoie le customer sans
// token et le frontend repassera par le login OTP.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, rawMobile string) (*models.Customer, *models.AccessToken, error) {
	mobile := utils.FormatMobile(rawMobile)

	password, err := utils.GeneratePassword()
	if err != nil {
		return nil, nil, err
	}

	var created struct {
		Customer *models.Customer `json:"customer"`
	}
	body := map[string]interface{}{
		"customer": map[string]interface{}{
			"first_name":            firstName,
			"last_name":             lastName,
			"email":                 email,
			"phone":                 "+" + mobile,
			"password":              password,
			"password_confirmation": password,
			"verified_email":        true,
		},
	}
	if err := s.shopify.AdminREST(ctx, http.MethodPost, "/customers.json", body, &created); err != nil {
		return nil, nil, err
	}
	if created.Customer == nil {
		return nil, nil, errors.New("création customer: réponse Shopify sans customer")
	}

	token, err := s.createAccessToken(ctx, email, password)
	if err != nil {
		log.Printf("⚠️ Inscription OK mais token KO pour %s: %v", email, err)
		return created.Customer, nil, nil
	}

	return created.Customer, token, nil
}

// findCustomerByPhone cherche un customer Shopify par numéro. Nil sans
// erreur quand aucun ne correspond.
func (s *AuthService) findCustomerByPhone(ctx context.Context, mobile string) (*models.Customer, error) {
	var result struct {
		Customers []models.Customer `json:"customers"`
	}
	path := "/customers/search.json?query=" + url.QueryEscape("phone:+"+mobile)
	if err := s.shopify.AdminREST(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	if len(result.Customers) == 0 {
		return nil, nil
	}
	return &result.Customers[0], nil
}

// rotatePassword remplace le mot de passe Shopify du customer.
func (s *AuthService) rotatePassword(ctx context.Context, customerID int64, password string) error {
	body := map[string]interface{}{
		"customer": map[string]interface{}{
			"id":                    customerID,
			"password":              password,
			"password_confirmation": password,
		},
	}
	path := fmt.Sprintf("/customers/%d.json", customerID)
	return s.shopify.AdminREST(ctx, http.MethodPut, path, body, nil)
}

// createAccessToken obtient un customerAccessToken Storefront.
func (s *AuthService) createAccessToken(ctx context.Context, email, password string) (*models.AccessToken, error) {
	raw, err := s.shopify.StorefrontQuery(ctx, shopify.CustomerAccessTokenCreateMutation, map[string]interface{}{
		"input": map[string]interface{}{
			"email":    email,
			"password": password,
		},
	})
	if err != nil {
		return nil, err
	}

	var data shopify.TokenCreateData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	token := data.CustomerAccessTokenCreate.CustomerAccessToken
	if token == nil {
		msg := "customerAccessTokenCreate sans token"
		if userErrors := data.CustomerAccessTokenCreate.CustomerUserErrors; len(userErrors) > 0 {
			msg = userErrors[0].Message
		}
		return nil, errors.New(msg)
	}

	return &models.AccessToken{AccessToken: token.AccessToken, ExpiresAt: token.ExpiresAt}, nil
}
