// Command token mints a bearer token for a service calling the /api routes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"stock_analytics/internal/app/config"
	jwtmw "stock_analytics/internal/platform/jwt"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	subject := flag.String("sub", "", "calling service name")
	ttl := flag.Duration("ttl", 0, "token lifetime; 0 uses auth.token_ttl")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Auth.Secret == "" {
		log.Fatal("auth.secret (STOCK_AUTH_SECRET) is not set")
	}

	expiration := cfg.Auth.TokenTTL
	if *ttl > 0 {
		expiration = *ttl
	}

	token, err := jwtmw.NewGenerator(cfg.Auth.Secret, expiration).GenerateToken(*subject)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(os.Stdout, token)
}
