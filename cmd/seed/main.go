package main

import (
	"context"
	"log"
	"os"
	"time"

	"authapi/internal/database"
	"authapi/internal/domain"
	"authapi/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "authapi.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM token_blacklist")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)

	log.Println("Creating users...")

	dob := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	seedUsers := []struct {
		email    string
		password string
		user     domain.User
	}{
		{
			email:    "alice@example.com",
			password: "password123",
			user: domain.User{
				Email:       "alice@example.com",
				FirstName:   "Alice",
				LastName:    "Anderson",
				PhoneNumber: "+15550100001",
				DateOfBirth: &dob,
			},
		},
		{
			email:    "bob@example.com",
			password: "password123",
			user: domain.User{
				Email:     "bob@example.com",
				FirstName: "Bob",
				LastName:  "Brown",
			},
		},
	}

	for _, s := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash failed for %s: %v", s.email, err)
		}
		u := s.user
		u.PasswordHash = string(hash)
		if err := users.Create(ctx, &u); err != nil {
			log.Fatalf("create failed for %s: %v", s.email, err)
		}
		log.Printf("created user id=%s email=%s", u.ID, u.Email)
	}

	log.Println("Seed completed")
}
