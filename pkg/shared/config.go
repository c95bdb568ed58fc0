package shared

import (
	"os"
	"strings"
)

// GatewayConfig carries the environment-derived settings for the REST
// gateway and wallet integrations.
type GatewayConfig struct {
	Network   string
	BaseURL   string
	APIKey    string
	ProjectID string
	Debug     bool
}

// GatewayConfigFromEnv resolves gateway settings from the environment.
// Missing values stay empty so callers can apply their own defaults.
func GatewayConfigFromEnv() GatewayConfig {
	loadDotEnvIfPresent()

	network := firstNonEmptyEnv("HEDERA_NETWORK", "NETWORK")
	if network == "" {
		network = NetworkTestnet
	}

	return GatewayConfig{
		Network:   network,
		BaseURL:   firstNonEmptyEnv("GATEWAY_BASE_URL", "GATEWAY_URL"),
		APIKey:    firstNonEmptyEnv("GATEWAY_API_KEY"),
		ProjectID: firstNonEmptyEnv("WALLETCONNECT_PROJECT_ID", "PROJECT_ID"),
		Debug:     isTruthyEnv("GATEWAY_DEBUG", "DEBUG"),
	}
}

// EnvOrDefault returns the trimmed value of the named variable, or fallback
// when unset or blank.
func EnvOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func isTruthyEnv(keys ...string) bool {
	value := strings.ToLower(firstNonEmptyEnv(keys...))
	switch value {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
