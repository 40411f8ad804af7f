// Command seed wipes non-admin data and repopulates the database with a
// sample election, candidates and ten student accounts. Intended for
// development and demos only.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/campuspolls/election-backend/internal/election"
	"github.com/campuspolls/election-backend/internal/platform/authz"
	"github.com/campuspolls/election-backend/internal/platform/config"
	"github.com/campuspolls/election-backend/internal/platform/database"
	"github.com/campuspolls/election-backend/internal/user"
	"github.com/campuspolls/election-backend/internal/vote"
)

func main() {
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
	if err := election.MigrateDB(); err != nil {
		log.Fatal(err)
	}
	if err := vote.MigrateDB(); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Deleting existing sample data...")
	db := database.DB
	if err := db.Exec("DELETE FROM votes").Error; err != nil {
		log.Fatal(err)
	}
	if err := db.Exec("DELETE FROM candidate_fields").Error; err != nil {
		log.Fatal(err)
	}
	if err := db.Exec("DELETE FROM candidates").Error; err != nil {
		log.Fatal(err)
	}
	if err := db.Exec("DELETE FROM elections").Error; err != nil {
		log.Fatal(err)
	}
	if err := db.Exec("DELETE FROM users WHERE role <> ?", authz.RoleAdmin).Error; err != nil {
		log.Fatal(err)
	}

	fmt.Println("Creating sample data...")

	students := make([]*user.User, 0, 10)
	for i := 1; i <= 10; i++ {
		sid := fmt.Sprintf("STU%03d", i)
		u, err := user.Create(user.NewUser{
			Username:   fmt.Sprintf("student%d", i),
			Password:   "password",
			StudentID:  &sid,
			Department: "Computer Science",
			Year:       2023,
			FirstName:  "Student",
			LastName:   fmt.Sprintf("%d", i),
		})
		if err != nil {
			log.Fatalf("failed to create student%d: %v", i, err)
		}
		students = append(students, u)
	}

	e, err := election.CreateElection(election.ElectionInput{
		Name:      "College Union Election 2026",
		StartDate: time.Now(),
		EndDate:   time.Now().Add(7 * 24 * time.Hour),
	})
	if err != nil {
		log.Fatalf("failed to create election: %v", err)
	}

	bios := []string{
		"I will bring change!",
		"I am the best for this role.",
		"Vote for me!",
		"I will work for you.",
	}
	for i, bio := range bios {
		cand, err := election.AddCandidate(e.ID, election.CandidateInput{
			FullName: students[i].FirstName + " " + students[i].LastName,
			Bio:      bio,
			Username: students[i].Username,
		})
		if err != nil {
			log.Fatalf("failed to create candidate: %v", err)
		}
		if _, err := election.AddField(cand.ID, "Slogan", bio); err != nil {
			log.Fatalf("failed to create candidate field: %v", err)
		}
	}

	fmt.Println("Successfully populated the database.")
}
