// Command devtoken mints a bearer token for local testing against the server.
//
//	go run ./cmd/devtoken -user alice
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/pkg/logging"
)

func main() {
	user := flag.String("user", "", "user id to put in the token")
	email := flag.String("email", "", "optional email claim")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if *user == "" {
		flag.Usage()
		os.Exit(2)
	}
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	token, err := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL).Generate(*user, *email)
	if err != nil {
		slog.Error("Failed to mint token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
