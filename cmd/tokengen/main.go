// Command tokengen prints a client bearer token signed with API_SECRET.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/satriahrh/speechsuite/internal/auth"
)

func main() {
	godotenv.Load()

	clientID := flag.String("client", "web-ui", "client identifier embedded in the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	tokens, err := auth.NewTokenManager(os.Getenv("API_SECRET"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "API_SECRET environment variable is required")
		os.Exit(1)
	}

	token, err := tokens.GenerateClientToken(*clientID, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
