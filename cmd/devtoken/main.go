// Command devtoken signs HS256 ID tokens for local development against an
// API running without AUTH_ISSUER.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"devsa-jobs/internal/config"
	"devsa-jobs/internal/service/auth"
)

func main() {
	_ = godotenv.Load()

	subject := flag.String("sub", "", "subject id")
	email := flag.String("email", "", "email address")
	superAdmin := flag.Bool("super-admin", false, "grant the super_admin claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *subject == "" {
		log.Fatal("-sub is required")
	}

	cfg := config.Load()
	verifier, err := auth.NewJWTVerifier(cfg.JWTSecret, "", cfg.SuperAdminEmails)
	if err != nil {
		log.Fatalf("Failed to create verifier: %v", err)
	}

	token, err := verifier.Issue(*subject, *email, *superAdmin, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(token)
}
