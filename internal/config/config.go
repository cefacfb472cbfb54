package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config regroupe toutes les variables d'environnement dont le serveur a besoin.
// Toutes les credentials sont obligatoires : on refuse de démarrer sans elles
// plutôt que d'échouer au premier appel réseau.
type Config struct {
	// Shopify
	Shop            string // sous-domaine *.myshopify.com (ex: "luciraonline")
	StorefrontToken string
	AdminToken      string

	// MSG91 (OTP par SMS)
	MSG91AuthKey    string
	MSG91TemplateID string

	// Nector (avis produits)
	NectorAPIKey      string
	NectorWorkspaceID string

	// Optionnel
	Port            string
	RedisHost       string
	RedisPassword   string
	FrontendOrigins []string
}

// Load charge le fichier .env s'il existe.
func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// New lit la configuration depuis l'environnement et valide les credentials.
// Liste toutes les variables manquantes d'un coup pour éviter les démarrages
// en plusieurs essais.
func New() (*Config, error) {
	cfg := &Config{
		Shop:              os.Getenv("SHOPIFY_SHOP"),
		StorefrontToken:   os.Getenv("STOREFRONT_TOKEN"),
		AdminToken:        os.Getenv("SHOPIFY_ADMIN_TOKEN"),
		MSG91AuthKey:      os.Getenv("MSG91_AUTH_KEY"),
		MSG91TemplateID:   os.Getenv("MSG91_TEMPLATE_ID"),
		NectorAPIKey:      os.Getenv("NECTOR_API_KEY"),
		NectorWorkspaceID: os.Getenv("NECTOR_WORKSPACE_ID"),
		Port:              os.Getenv("PORT"),
		RedisHost:         os.Getenv("REDIS_HOST"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if origins := os.Getenv("FRONTEND_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.FrontendOrigins = append(cfg.FrontendOrigins, o)
			}
		}
	}
	if len(cfg.FrontendOrigins) == 0 {
		cfg.FrontendOrigins = []string{"http://localhost:3000"}
	}

	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"SHOPIFY_SHOP", cfg.Shop},
		{"STOREFRONT_TOKEN", cfg.StorefrontToken},
		{"SHOPIFY_ADMIN_TOKEN", cfg.AdminToken},
		{"MSG91_AUTH_KEY", cfg.MSG91AuthKey},
		{"MSG91_TEMPLATE_ID", cfg.MSG91TemplateID},
		{"NECTOR_API_KEY", cfg.NectorAPIKey},
		{"NECTOR_WORKSPACE_ID", cfg.NectorWorkspaceID},
	}
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("variables d'environnement manquantes: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
