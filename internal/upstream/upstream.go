package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

// Error représente une réponse en échec d'une API tierce (Shopify, MSG91,
// Nector). On garde le status HTTP amont et le premier message d'erreur pour
// les logs — jamais renvoyés tels quels au client.
type Error struct {
	Service string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: upstream %d: %s", e.Service, e.Status, e.Message)
}

// ErrNotConfigured signale une credential absente. Détecté avant tout appel
// réseau.
type ErrNotConfigured struct {
	Service string
	Name    string
}

func (e *ErrNotConfigured) Error() string {
	return fmt.Sprintf("%s: %s non configuré", e.Service, e.Name)
}

// DoJSON exécute une requête HTTP avec body/réponse JSON et loggue
// l'identité de l'appel et son issue. Aucun retry : en cas d'échec on
// loggue et on remonte l'erreur, c'est à l'appelant de décider.
func DoJSON(ctx context.Context, client *http.Client, service, method, url string, headers map[string]string, body interface{}, out interface{}) error {
	if client == nil {
		client = http.DefaultClient
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encodage body: %w", service, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%s: création requête: %w", service, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := client.Do(req)
	if err != nil {
		log.Printf("❌ [%s] %s %s: %v", service, method, url, err)
		return &Error{Service: service, Status: 0, Message: err.Error()}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		log.Printf("❌ [%s] %s %s: lecture réponse: %v", service, method, url, err)
		return &Error{Service: service, Status: res.StatusCode, Message: err.Error()}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		log.Printf("❌ [%s] %s %s → %d: %s", service, method, url, res.StatusCode, firstLine(raw))
		return &Error{Service: service, Status: res.StatusCode, Message: string(raw)}
	}

	log.Printf("✅ [%s] %s %s → %d", service, method, url, res.StatusCode)

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &Error{Service: service, Status: res.StatusCode, Message: "réponse JSON invalide: " + err.Error()}
		}
	}
	return nil
}

// firstLine tronque une réponse d'erreur pour les logs.
func firstLine(raw []byte) string {
	const max = 300
	s := string(raw)
	if len(s) > max {
		return s[:max] + "…"
	}
	return s
}
