// cmd/adduser/main.go
// Creates or updates a user (and its profile) in the database.
//
// Usage:
//
//	go run ./cmd/adduser -email you@example.com -password testing123A -name "Full Name" -country GB
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/padraicbc/betlog/config"
	bundb "github.com/padraicbc/betlog/db"
	"github.com/padraicbc/betlog/models"
)

func main() {
	email := flag.String("email", "", "email (required)")
	pw := flag.String("password", "", "plain-text password (required)")
	name := flag.String("name", "", "full name (required)")
	country := flag.String("country", "GB", "country code")
	flag.Parse()

	if *email == "" || *pw == "" || *name == "" {
		log.Fatal("-email, -password and -name are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*pw), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	ctx := context.Background()
	user := &models.User{
		ID:       uuid.New(),
		Email:    *email,
		Password: string(hash),
	}

	_, err = db.NewInsert().Model(user).
		On("CONFLICT (email) DO UPDATE SET password = EXCLUDED.password").
		Exec(ctx)
	if err != nil {
		log.Fatal("insert user:", err)
	}

	// The upsert may have kept an existing id; read it back for the profile.
	if err := db.NewSelect().Model(user).Where("email = ?", *email).Scan(ctx); err != nil {
		log.Fatal("select user:", err)
	}

	profile := &models.UserProfile{
		UserID:   user.ID,
		FullName: *name,
		Email:    *email,
		Country:  *country,
	}
	_, err = db.NewInsert().Model(profile).
		On("CONFLICT (user_id) DO UPDATE SET full_name = EXCLUDED.full_name, country = EXCLUDED.country").
		Exec(ctx)
	if err != nil {
		log.Fatal("insert profile:", err)
	}

	fmt.Printf("user %q saved\n", *email)
}
