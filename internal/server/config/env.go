package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the process environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment take precedence over it.
//
// Recognised variables:
//
//	PORT                     HTTP port (bind address becomes ":PORT")
//	GRPC_ADDR                gRPC health bind address
//	DATABASE_URL             full PostgreSQL DSN
//	PG_HOST, PG_PORT, PG_USER, PG_PWD, PG_DB
//	                         DSN parts, used when DATABASE_URL is empty
//	CLARIFAI_API_KEY, CLARIFAI_MODEL_ID, CLARIFAI_USER_ID, CLARIFAI_APP_ID
//	CORS_ALLOWED_ORIGINS     comma separated list
//	LOG_LEVEL
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("PORT"); v != "" {
		config.EndpointAddrHTTP = ":" + v
	}
	setString(&config.EndpointAddrGRPC, "GRPC_ADDR")

	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.DatabaseDSN = v
	} else if host := os.Getenv("PG_HOST"); host != "" {
		config.DatabaseDSN = buildDSN(host, os.Getenv("PG_PORT"), os.Getenv("PG_USER"), os.Getenv("PG_PWD"), os.Getenv("PG_DB"))
	}

	setString(&config.InferenceAPIKey, "CLARIFAI_API_KEY")
	setString(&config.InferenceModelID, "CLARIFAI_MODEL_ID")
	setString(&config.InferenceUserID, "CLARIFAI_USER_ID")
	setString(&config.InferenceAppID, "CLARIFAI_APP_ID")
	setString(&config.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		config.CORSAllowedOrigins = splitList(v)
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func buildDSN(host, port, user, password, dbname string) string {
	if port == "" {
		port = "5432"
	}
	u := url.URL{
		Scheme:   "postgres",
		Host:     fmt.Sprintf("%s:%s", host, port),
		Path:     "/" + dbname,
		RawQuery: "sslmode=disable",
	}
	if user != "" {
		u.User = url.UserPassword(user, password)
	}
	return u.String()
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
