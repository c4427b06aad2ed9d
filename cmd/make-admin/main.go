// Command make-admin promotes an existing user to the admin role directly
// against the store. Used to bootstrap the first administrator, since role
// elevation over HTTP requires an existing admin.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/learnnest/learnnest-backend/internal/config"
	"github.com/learnnest/learnnest-backend/internal/model"
)

func main() {
	var email string
	flag.StringVar(&email, "email", "", "Email of the user to promote")
	flag.Parse()

	if email == "" {
		log.Fatal("usage: make-admin -email <email>")
	}

	cfg := config.Load()
	ctx := context.Background()

	conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer conn.Close(ctx)

	tag, err := conn.Exec(ctx,
		`UPDATE users SET role = $1, status = $2 WHERE email = $3`,
		model.RoleAdmin, model.UserStatusVerified, email)
	if err != nil {
		log.Fatalf("promote: %v", err)
	}
	if tag.RowsAffected() == 0 {
		log.Fatalf("no user with email %s — they must sign in once first", email)
	}

	fmt.Printf("%s is now an admin\n", email)
}
