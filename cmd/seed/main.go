package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"coinvault/internal/config"
	"coinvault/internal/db"
	"coinvault/internal/model"
	"coinvault/internal/repository"
)

// Seed tool: creates a demo user (with its empty profile) for local testing.
func main() {
	nickname := flag.String("nickname", "", "nickname for the new user")
	password := flag.String("password", "", "password for the new user")
	flag.Parse()

	reader := bufio.NewReader(os.Stdin)
	if *nickname == "" {
		fmt.Print("Nickname: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("read nickname: %v", err)
		}
		*nickname = strings.TrimSpace(line)
	}
	if *password == "" {
		fmt.Print("Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("read password: %v", err)
		}
		*password = strings.TrimSpace(line)
	}

	if len(*nickname) < 3 || len(*password) < 6 {
		log.Fatal("nickname must be at least 3 characters and password at least 6")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Profile{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), 10)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	user := &model.User{
		Nickname:     *nickname,
		PasswordHash: string(hashed),
	}
	if err := userRepo.CreateWithProfile(context.Background(), user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	log.Printf("Created user %s (id=%d)", user.Nickname, user.ID)
}
