//go:build ignore

// This script generates the secrets for catalog administration.
// Run with: go run scripts/generate_keys.go -password 'admin password'
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"

	"github.com/guttosm/laundry-service/internal/service"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(bytes), nil
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", what, err)
	os.Exit(1)
}

func main() {
	password := flag.String("password", "", "admin password to hash (a random one is generated when empty)")
	flag.Parse()

	fmt.Println("=== Laundry Service Key Generator ===")
	fmt.Println()

	jwtSecret, err := generateSecureKey(32)
	if err != nil {
		fail("JWT secret", err)
	}

	apiKey, err := generateSecureKey(24)
	if err != nil {
		fail("API key", err)
	}

	generated := *password == ""
	if generated {
		if *password, err = generateSecureKey(12); err != nil {
			fail("admin password", err)
		}
	}
	hash, err := service.HashPassword(*password)
	if err != nil {
		fail("password hash", err)
	}

	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Println("# Catalog administration")
	fmt.Println("AUTH_ENABLED=true")
	fmt.Printf("JWT_SECRET_KEY=%s\n", jwtSecret)
	fmt.Println("ADMIN_USERNAME=admin")
	fmt.Printf("ADMIN_PASSWORD_HASH='%s'\n", hash)
	if generated {
		fmt.Printf("# admin password: %s\n", *password)
	}
	fmt.Println()
	fmt.Println("# API Key (optional, for API key authentication)")
	fmt.Printf("API_KEYS=%s\n", apiKey)
	fmt.Println()
	fmt.Println("=== IMPORTANT ===")
	fmt.Println("- Never commit these keys to version control")
	fmt.Println("- Use different keys for each environment (dev, staging, prod)")
	fmt.Println("- Store production keys in a secure secret manager")
}
