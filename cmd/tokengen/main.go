// tokengen mints a development bearer token for a given user id, signed
// with the same shared secret the server verifies against. Useful for
// exercising the API locally without a real identity provider.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"moviebox/pkg/config"
	"moviebox/pkg/jwt"
	"os"
	"strings"
	"time"
)

func main() {
	var (
		userID string
		email  string
		ttl    time.Duration
	)

	flag.StringVar(&userID, "user", "", "Subject user id to embed in the token (required)")
	flag.StringVar(&email, "email", "", "Email claim to embed in the token")
	flag.DurationVar(&ttl, "ttl", 0, "Token lifetime, overrides AUTH_TOKEN_TTL")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if strings.TrimSpace(userID) == "" {
		slog.Error("missing required -user flag")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	if cfg.Auth.JWTSecret == "" {
		slog.Error("AUTH_JWT_SECRET is not set")
		os.Exit(1)
	}

	if ttl == 0 {
		ttl = time.Duration(cfg.Auth.TokenTTL) * time.Second
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	provider := jwt.NewProvider(cfg.Auth.JWTSecret, ttl)
	token, err := provider.GenerateAccessToken(userID, email)
	if err != nil {
		slog.Error("cannot sign token", "error", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
