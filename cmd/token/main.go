// Command token issues an operator access token for the attendance API.
//
//	go run ./cmd/token -user kiosk-1 -role clerk
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/config"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "operator identifier recorded on approvals and corrections")
	role := flag.String("role", string(user.RoleClerk), "operator role: admin, supervisor or clerk")
	ttl := flag.String("ttl", "", "token lifetime, defaults to JWT_ACCESS_EXPIRATION_TIME")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "-user is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	lifetime := cfg.JWT.AccessExpiration
	if *ttl != "" {
		lifetime = *ttl
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, lifetime).GenerateAccessToken(*userID, user.Role(*role))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error issuing token:", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "expires %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
	fmt.Println(token)
}
