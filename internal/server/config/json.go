package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/smartbrain/internal/flagx"
	"github.com/dmitrijs2005/smartbrain/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations accept
// both "10s" style strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP    string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC    string         `json:"endpoint_addr_grpc"`
	DatabaseDSN         string         `json:"database_dsn"`
	BcryptCost          int            `json:"bcrypt_cost"`
	InferenceAddr       string         `json:"inference_addr"`
	InferenceAPIKey     string         `json:"inference_api_key"`
	InferenceModelID    string         `json:"inference_model_id"`
	InferenceUserID     string         `json:"inference_user_id"`
	InferenceAppID      string         `json:"inference_app_id"`
	InferenceTimeout    timex.Duration `json:"inference_timeout"`
	CORSAllowedOrigins  []string       `json:"cors_allowed_origins"`
	HealthCheckInterval timex.Duration `json:"health_check_interval"`
	ShutdownTimeout     timex.Duration `json:"shutdown_timeout"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c/-config. Only keys
// present with a non-zero value override the current settings. An unreadable
// or malformed file panics.
func parseJson(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlay(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.BcryptCost, c.BcryptCost)
	overlay(&config.InferenceAddr, c.InferenceAddr)
	overlay(&config.InferenceAPIKey, c.InferenceAPIKey)
	overlay(&config.InferenceModelID, c.InferenceModelID)
	overlay(&config.InferenceUserID, c.InferenceUserID)
	overlay(&config.InferenceAppID, c.InferenceAppID)
	overlay(&config.InferenceTimeout, c.InferenceTimeout.Duration)
	overlay(&config.HealthCheckInterval, c.HealthCheckInterval.Duration)
	overlay(&config.ShutdownTimeout, c.ShutdownTimeout.Duration)
	overlay(&config.LogLevel, c.LogLevel)

	if len(c.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
}

func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}
