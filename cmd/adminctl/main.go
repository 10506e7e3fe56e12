// Command adminctl bootstraps the first owner account. It talks to the
// database directly, so it works before the HTTP endpoint is reachable.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/tableorderhq/tableorder/internal/server/config"
	"github.com/tableorderhq/tableorder/internal/server/models"
	"github.com/tableorderhq/tableorder/internal/server/repositories/repomanager"
	"github.com/tableorderhq/tableorder/internal/server/services"
	"golang.org/x/term"
)

func main() {
	email := flag.String("email", "", "owner account email")
	name := flag.String("name", "", "display name (defaults to the email local part)")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: adminctl -email owner@example.com [-name \"Owner\"]")
		os.Exit(2)
	}

	password, err := promptPassword()
	if err != nil {
		log.Fatalf("password prompt failed: %v", err)
	}

	ctx := context.Background()
	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	users := services.NewUserService(db, rm, cfg)
	profile, err := users.Register(ctx, *email, password, *name, models.RoleOwner)
	if err != nil {
		log.Fatalf("account creation failed: %v", err)
	}

	fmt.Printf("owner account created: %s (%s)\n", profile.Email, profile.ID)
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	first, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}

	fmt.Print("Confirm password: ")
	second, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	if len(first) == 0 {
		return "", fmt.Errorf("password must not be empty")
	}
	return string(first), nil
}
