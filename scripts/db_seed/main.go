// Seeds the database with demo business and contractor accounts for local
// development. All accounts share the password "password123".
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	dbfs "github.com/connectpro/connectpro/db"
	"github.com/connectpro/connectpro/internal/config"
	"github.com/connectpro/connectpro/internal/db"
	"github.com/connectpro/connectpro/internal/repository/sqlite"
	"github.com/connectpro/connectpro/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

func strPtr(s string) *string { return &s }

func demoUsers() []models.User {
	businesses := []struct {
		first, last, company, businessType, location, phone string
	}{
		{"Sarah", "Johnson", "Johnson Construction Co.", "construction", "Austin, TX", "(512) 555-0101"},
		{"Michael", "Chen", "Chen Property Development", "real_estate", "Seattle, WA", "(206) 555-0102"},
		{"Amanda", "Miller", "Miller Restaurant Group", "restaurant", "San Diego, CA", "(619) 555-0107"},
		{"Lisa", "Anderson", "Anderson Medical Centers", "medical", "Houston, TX", "(713) 555-0109"},
		{"James", "Taylor", "Taylor Tech Solutions", "technology", "San Francisco, CA", "(415) 555-0110"},
	}

	contractors := []struct {
		first, last, location, phone, bio string
		skills                            []string
	}{
		{"Carlos", "Ramirez", "Austin, TX", "(512) 555-0201", "Experienced plumber with 15+ years in residential and commercial projects.", []string{"Plumbing", "Electrical Work"}},
		{"Emma", "Thompson", "Seattle, WA", "(206) 555-0202", "Licensed electrician specializing in smart home installations.", []string{"HVAC", "Electrical Work"}},
		{"Jake", "Morrison", "Denver, CO", "(303) 555-0203", "Master carpenter with expertise in custom furniture and home renovations.", []string{"Carpentry", "Framing"}},
		{"Zoe", "Carter", "Dallas, TX", "(214) 555-0208", "Kitchen remodeling expert with a passion for modern design.", []string{"Kitchen Remodeling", "Cabinetry"}},
		{"Isabella", "Stewart", "Baltimore, MD", "(410) 555-0220", "General contractor managing residential and commercial projects.", []string{"General Contracting", "Project Management"}},
	}

	var out []models.User
	for _, b := range businesses {
		email := strings.ToLower(b.first + "." + b.last + "@example.com")
		out = append(out, models.User{
			Email:        email,
			FirstName:    b.first,
			LastName:     b.last,
			UserType:     models.UserTypeBusiness,
			CompanyName:  strPtr(b.company),
			BusinessType: strPtr(b.businessType),
			PhoneNumber:  strPtr(b.phone),
			Location:     strPtr(b.location),
			IsVerified:   true,
		})
	}
	for _, c := range contractors {
		email := strings.ToLower(c.first + "." + c.last + "@example.com")
		out = append(out, models.User{
			Email:       email,
			FirstName:   c.first,
			LastName:    c.last,
			UserType:    models.UserTypeContractor,
			PhoneNumber: strPtr(c.phone),
			Location:    strPtr(c.location),
			Skills:      c.skills,
			Bio:         strPtr(c.bio),
			IsVerified:  true,
		})
	}
	return out
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB open error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	repo := sqlite.New(database)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash error: %v\n", err)
		os.Exit(1)
	}

	seeded := 0
	for _, u := range demoUsers() {
		existing, err := repo.GetUserByEmail(ctx, u.Email)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Lookup error for %s: %v\n", u.Email, err)
			os.Exit(1)
		}
		if existing != nil {
			continue
		}
		u.PasswordHash = string(hash)
		if _, err := repo.CreateUser(ctx, &u); err != nil {
			fmt.Fprintf(os.Stderr, "Seed error for %s: %v\n", u.Email, err)
			os.Exit(1)
		}
		seeded++
	}

	fmt.Printf("Seeded %d demo users.\n", seeded)
}
