package msg91

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"lucira_back_end/internal/config"
	"lucira_back_end/internal/upstream"
)

const defaultBaseURL = "https://control.msg91.com"

// Client envoie et vérifie les OTP par SMS via MSG91.
type Client struct {
	AuthKey    string
	TemplateID string
	BaseURL    string
	HTTP       *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		AuthKey:    cfg.MSG91AuthKey,
		TemplateID: cfg.MSG91TemplateID,
		BaseURL:    defaultBaseURL,
		HTTP:       http.DefaultClient,
	}
}

// otpResponse est la réponse commune send/verify de MSG91 :
// {"type":"success"} ou {"type":"error","message":"..."}.
type otpResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SendOTP déclenche l'envoi d'un OTP (expire au bout de 5 minutes) vers un
// numéro déjà normalisé (91XXXXXXXXXX).
func (c *Client) SendOTP(ctx context.Context, mobile string) error {
	if c.AuthKey == "" || c.TemplateID == "" {
		return &upstream.ErrNotConfigured{Service: "msg91", Name: "MSG91_AUTH_KEY / MSG91_TEMPLATE_ID"}
	}

	body := map[string]interface{}{
		"mobile":           mobile,
		"template_id":      c.TemplateID,
		"otp_expiry":       5,
		"realTimeResponse": 1,
	}
	headers := map[string]string{"authkey": c.AuthKey}

	var res otpResponse
	if err := upstream.DoJSON(ctx, c.HTTP, "msg91", http.MethodPost, c.BaseURL+"/api/v5/otp", headers, body, &res); err != nil {
		return err
	}
	if res.Type != "success" {
		return &upstream.Error{Service: "msg91", Status: http.StatusOK, Message: providerMessage(res)}
	}
	return nil
}

// VerifyOTP vérifie l'OTP saisi par le client. Une erreur signifie "OTP
// invalide" du point de vue de l'appelant.
func (c *Client) VerifyOTP(ctx context.Context, mobile, otp string) error {
	if c.AuthKey == "" {
		return &upstream.ErrNotConfigured{Service: "msg91", Name: "MSG91_AUTH_KEY"}
	}

	endpoint := fmt.Sprintf("%s/api/v5/otp/verify?mobile=%s&otp=%s",
		c.BaseURL, url.QueryEscape(mobile), url.QueryEscape(otp))
	headers := map[string]string{"authkey": c.AuthKey}

	var res otpResponse
	err := upstream.DoJSON(ctx, c.HTTP, "msg91", http.MethodGet, endpoint, headers, nil, &res)
	if err != nil {
		// MSG91 renvoie parfois un body JSON avec le message sur un non-2xx :
		// on essaie de le récupérer pour un message d'erreur plus utile.
		var upErr *upstream.Error
		if errors.As(err, &upErr) {
			var parsed otpResponse
			if json.Unmarshal([]byte(upErr.Message), &parsed) == nil && parsed.Message != "" {
				upErr.Message = parsed.Message
			}
		}
		return err
	}
	if res.Type != "success" {
		return &upstream.Error{Service: "msg91", Status: http.StatusOK, Message: providerMessage(res)}
	}
	return nil
}

func providerMessage(res otpResponse) string {
	if res.Message != "" {
		return res.Message
	}
	return "Invalid OTP"
}
