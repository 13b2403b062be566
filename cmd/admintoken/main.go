// Command admintoken prints a signed ADMIN access token for the operator
// endpoints, e.g.
//
//	curl -H "Authorization: Bearer $(go run ./cmd/admintoken -sub ops)" \
//	     -X POST localhost:8081/api/admin/flights/1/seats
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/iliyamo/flight-booking/internal/utils"
)

// tokenConfig is the slice of the server configuration needed to mint
// tokens, so the database settings need not be present.
type tokenConfig struct {
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TTL       time.Duration `envconfig:"ADMIN_TOKEN_TTL" default:"60m"`
}

func main() {
	_ = godotenv.Load()

	var cfg tokenConfig
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintln(os.Stderr, "admintoken:", err)
		os.Exit(1)
	}
	sub := flag.String("sub", "admin", "token subject")
	ttl := flag.Duration("ttl", 0, "token lifetime (default ADMIN_TOKEN_TTL)")
	flag.Parse()

	if *ttl <= 0 {
		*ttl = cfg.TTL
	}

	tok, err := utils.NewAccessToken(cfg.JWTSecret, *sub, "ADMIN", *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "admintoken:", err)
		os.Exit(1)
	}
	fmt.Println(tok.Token)
}
