package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"food-ordering-web/internal/api"
	"food-ordering-web/internal/config"
	"food-ordering-web/internal/session"
	"food-ordering-web/internal/storage"
)

func main() {
	var (
		email    = flag.String("email", "", "Sign in with this account")
		password = flag.String("password", "", "Password for -email")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout+5*time.Second)
	defer cancel()

	client := api.New(cfg.API.BaseURL, api.WithTimeout(cfg.API.Timeout))

	fmt.Printf("🔍 Checking %s\n", client.BaseURL())
	fmt.Println(strings.Repeat("=", 50))

	code, err := client.Ping(ctx)
	if err != nil {
		log.Fatalf("API unreachable: %v", err)
	}
	fmt.Printf("API answered: %d %s\n", code, http.StatusText(code))
	if code >= http.StatusInternalServerError {
		log.Fatal("API is degraded")
	}

	if *email == "" {
		return
	}

	// Sign in the same way the web app does, against throwaway storage
	store, err := session.New(storage.NewMemoryStorage(), client)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	sess, err := store.SignIn(ctx, session.Credentials{Email: *email, Password: *password})
	if err != nil {
		log.Fatalf("Sign in failed: %v", err)
	}

	fmt.Printf("Signed in as %s (%s)\n", sess.Email, sess.AccountType)
	fmt.Printf("  Subject: %s\n", sess.SubjectID)
	fmt.Printf("  Name:    %s\n", sess.Name)
	if sess.ExpiresAt != nil {
		fmt.Printf("  Expires: %s\n", sess.ExpiresAt.Format(time.RFC1123))
	}
}
