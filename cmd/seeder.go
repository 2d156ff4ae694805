package cmd

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample users and knowledge base articles for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"tickets", "articles", "users"} {
				if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		users := []struct {
			Username string
			Email    string
			Role     string
		}{
			{"admin", "admin@helpdesk.local", "admin"},
			{"erika", "erika@helpdesk.local", "employee"},
			{"agus", "agus@helpdesk.local", "agent"},
		}

		for _, u := range users {
			if seedRowExists(db, "SELECT 1 FROM users WHERE username = $1", u.Username) {
				fmt.Println("user already exists:", u.Username)
				continue
			}
			_, err := db.Exec(
				"INSERT INTO users (username, email, password_hash, role, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, true, now(), now())",
				u.Username, u.Email, string(hash), u.Role,
			)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Username, err)
			}
			fmt.Printf("Seeded %s user: %s\n", u.Role, u.Username)
		}

		var adminID int64
		if err := db.Get(&adminID, "SELECT id FROM users WHERE username = $1", "admin"); err != nil {
			log.Fatalf("failed to lookup admin user id: %v", err)
		}

		articles := []struct {
			Title   string
			Content string
		}{
			{
				"Password Reset",
				"To reset your password, open the account portal and choose Forgot Password. A reset link is mailed to your registered address and stays valid for one hour.",
			},
			{
				"VPN Setup Guide",
				"Install the company VPN client from the software center, then sign in with your directory credentials. Choose the office profile closest to your region.",
			},
			{
				"Requesting New Hardware",
				"Hardware requests go through the helpdesk ticket form. Pick the hardware priority that matches your situation and attach a manager approval if the item costs more than the standard budget.",
			},
		}

		for _, a := range articles {
			if seedRowExists(db, "SELECT 1 FROM articles WHERE title = $1", a.Title) {
				fmt.Println("article already exists:", a.Title)
				continue
			}
			_, err := db.Exec(
				"INSERT INTO articles (title, content, created_by, created_at, updated_at) VALUES ($1, $2, $3, now(), now())",
				a.Title, a.Content, adminID,
			)
			if err != nil {
				log.Fatalf("failed to insert article %q: %v", a.Title, err)
			}
			fmt.Println("Seeded article:", a.Title)
		}

		fmt.Println("Seeding complete. Default password for all users:", password)
	},
}

func seedRowExists(db *sqlx.DB, query string, args ...any) bool {
	var exists int
	return db.Get(&exists, query, args...) == nil
}
