package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	EmailSender    string
	SendGridApiKey string

	PinataApiURL     string // Pinata pinning API base URL
	PinataJWT        string // Pinata API bearer token
	PinataGatewayURL string // Dedicated gateway, e.g. https://mygateway.mypinata.cloud
	PublicGatewayURL string // Fallback public gateway

	AvalancheApiURL string // External minting service endpoint
	ExplorerURL     string // Block explorer base, for result links
	FrontendURL     string // Public verification frontend, may be empty

	HttpTimeoutSec int // Timeout for outbound HTTP calls
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EmailSender:    getEnv("EMAIL_SENDER", "noreply@certchain.io"),
		SendGridApiKey: getEnv("SENDGRID_API_KEY", ""),

		PinataApiURL:     getEnv("PINATA_API_URL", "https://api.pinata.cloud"),
		PinataJWT:        getEnv("PINATA_JWT", ""),
		PinataGatewayURL: getEnv("PINATA_GATEWAY_URL", ""),
		PublicGatewayURL: getEnv("PUBLIC_GATEWAY_URL", "https://gateway.pinata.cloud"),

		AvalancheApiURL: getEnv("AVALANCHE_API_URL", "http://localhost:4000/api/mint"),
		ExplorerURL:     getEnv("EXPLORER_URL", "https://testnet.snowtrace.io"),
		FrontendURL:     getEnv("FRONTEND_URL", ""),

		HttpTimeoutSec: getEnvInt("HTTP_TIMEOUT_SEC", 30),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.PinataJWT == "" {
		log.Println("Warning: PINATA_JWT is not set. IPFS uploads will fail.")
	}
	if AppConfig.FrontendURL == "" {
		log.Println("Warning: FRONTEND_URL is not set. Verification links will be relative.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
