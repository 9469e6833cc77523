// Operator CLI: grants administrator roles, forces statistics recomputes and
// removes reports, working against the database directly.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"complainthub/backend/internal/auth"
	"complainthub/backend/internal/config"
	"complainthub/backend/internal/models"
	"complainthub/backend/internal/stats"
	"complainthub/backend/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: create-admin, recompute-stats, delete-report")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "create-admin":
		if len(os.Args) != 5 {
			fmt.Println("Usage: admin create-admin <email> <name> <password>")
			os.Exit(1)
		}
		if err := createAdmin(storageSvc, os.Args[2], os.Args[3], os.Args[4]); err != nil {
			log.Fatalf("Error creating administrator: %v", err)
		}
		fmt.Printf("Administrator %s is ready.\n", os.Args[2])
	case "recompute-stats":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin recompute-stats <company_id|all>")
			os.Exit(1)
		}
		if err := recomputeStats(storageSvc, os.Args[2]); err != nil {
			log.Fatalf("Error recomputing statistics: %v", err)
		}
		fmt.Println("Statistics recomputed.")
	case "delete-report":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin delete-report <report_id>")
			os.Exit(1)
		}
		reportID, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Println("Invalid report ID. Please provide an integer.")
			os.Exit(1)
		}
		if err := storageSvc.DeleteReport(uint(reportID)); err != nil {
			log.Fatalf("Error deleting report: %v", err)
		}
		fmt.Printf("Report %d has been deleted.\n", reportID)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

// createAdmin grants the administrator role, creating the base account first
// when no account uses the email yet.
func createAdmin(s *storage.Service, email, name, password string) error {
	acc, err := s.GetAccountByEmail(email)
	if err != nil {
		return err
	}
	if acc == nil {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		acc = &models.Account{Email: email, Name: name, PasswordHash: hash}
		if err := s.DB.Create(acc).Error; err != nil {
			return err
		}
	}
	_, err = s.EnsureAdministrator(acc.ID)
	return err
}

func recomputeStats(s *storage.Service, target string) error {
	aggregator := stats.NewAggregator(s, nil)

	if target == "all" {
		companies, err := s.ListCompanies(storage.CompanyFilter{})
		if err != nil {
			return err
		}
		for _, company := range companies {
			if err := aggregator.Recompute(company.AccountID); err != nil {
				return fmt.Errorf("company %d: %w", company.AccountID, err)
			}
		}
		return nil
	}

	companyID, err := strconv.Atoi(target)
	if err != nil {
		return fmt.Errorf("invalid company id %q", target)
	}
	return aggregator.Recompute(uint(companyID))
}
