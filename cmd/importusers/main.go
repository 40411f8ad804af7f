// Command importusers bulk-creates accounts from a YAML file, the same
// format accepted by the admin import endpoint.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/campuspolls/election-backend/internal/platform/config"
	"github.com/campuspolls/election-backend/internal/platform/database"
	"github.com/campuspolls/election-backend/internal/user"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <users.yaml>\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := database.InitDB(cfg.Database); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	if err := user.MigrateDB(); err != nil {
		log.Fatal(err)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("failed to open %s: %v", os.Args[1], err)
	}
	defer f.Close()

	result, err := user.ImportYAML(f)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	for _, note := range result.Notes {
		fmt.Println("note:", note)
	}
	fmt.Printf("Imported %d users, skipped %d.\n", result.Created, result.Skipped)
}
