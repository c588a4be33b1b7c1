// Command stubserver runs the in-memory stand-in for the DevConnect
// backend, for developing the client without the real API.
//
//	DEVCONNECT_STUB_ADDR     listen address        (default :5000)
//	DEVCONNECT_STUB_SECRET   JWT signing secret    (default dev-only value)
//	DEVCONNECT_ADMIN_EMAIL   registration that becomes an admin account
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/sakif/devconnect/internal/stubserver"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	addr := os.Getenv("DEVCONNECT_STUB_ADDR")
	if addr == "" {
		addr = ":5000"
	}

	secret := os.Getenv("DEVCONNECT_STUB_SECRET")
	if secret == "" {
		// Fine for a local fixture; nothing durable is at stake.
		secret = "devconnect-stub-local-secret"
		logger.Warn("DEVCONNECT_STUB_SECRET not set — using the built-in dev secret")
	}

	srv, err := stubserver.New(stubserver.Config{
		JWTSecret:  secret,
		AdminEmail: os.Getenv("DEVCONNECT_ADMIN_EMAIL"),
	}, logger)
	if err != nil {
		logger.Error("failed to create stub server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(addr); err != nil {
		logger.Error("stub server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
