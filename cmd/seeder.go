package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		_, db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"expense_receipts", "expenses", "users", "company_configs", "companies"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		companyID := seedCompany(db, "Initech", "USD", 5000)

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

		adminID := seedUser(db, seedUserRow{
			Email: "admin@initech.test", Name: "Ada Admin",
			Role: "Admin", JobTitle: "Platform Administrator",
			PasswordHash: string(hash),
		})
		_ = adminID

		seniorID := seedUser(db, seedUserRow{
			Email: "senior@initech.test", Name: "Sam Senior",
			Role: "SeniorManagement", JobTitle: "VP Operations", Department: "Operations",
			CompanyID: &companyID, PasswordHash: string(hash),
		})

		managerID := seedUser(db, seedUserRow{
			Email: "manager@initech.test", Name: "Mara Manager",
			Role: "Manager", JobTitle: "Engineering Manager", Department: "Engineering",
			CompanyID: &companyID, ManagerID: &seniorID, PasswordHash: string(hash),
		})

		seedUser(db, seedUserRow{
			Email: "user@initech.test", Name: "Riley Report",
			Role: "User", JobTitle: "Software Engineer", Department: "Engineering",
			CompanyID: &companyID, ManagerID: &managerID, PasswordHash: string(hash),
		})

		// pending account: no role, no company; login must be refused
		seedUser(db, seedUserRow{
			Email: "pending@initech.test", Name: "Pat Pending",
			PasswordHash: string(hash),
		})

		fmt.Println("Seeding complete; all passwords are \"password\"")
	},
}

type seedUserRow struct {
	Email        string
	Name         string
	Role         string
	JobTitle     string
	Department   string
	CompanyID    *int64
	ManagerID    *int64
	PasswordHash string
}

func seedCompany(db *gorm.DB, name, currency string, expenseLimit int64) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM companies WHERE name = ?", name).Row().Scan(&id); err == nil {
		fmt.Println("company already exists:", name)
		return id
	}

	if err := db.Exec("INSERT INTO companies (name, created_at, updated_at) VALUES (?, now(), now())", name).Error; err != nil {
		log.Fatalf("failed to insert company %s: %v", name, err)
	}
	if err := db.Raw("SELECT id FROM companies WHERE name = ?", name).Row().Scan(&id); err != nil {
		log.Fatalf("failed to lookup company id for %s: %v", name, err)
	}

	if err := db.Exec("INSERT INTO company_configs (company_id, currency, expense_limit, receipts_needed, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())",
		id, currency, expenseLimit).Error; err != nil {
		log.Fatalf("failed to insert company config for %s: %v", name, err)
	}

	fmt.Println("Seeded company:", name)
	return id
}

func seedUser(db *gorm.DB, row seedUserRow) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM users WHERE email = ?", row.Email).Row().Scan(&id); err == nil {
		fmt.Println("user already exists:", row.Email)
		return id
	}

	err := db.Exec(`INSERT INTO users (email, name, password_hash, role, job_title, department, company_id, manager_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, now(), now())`,
		row.Email, row.Name, row.PasswordHash, row.Role, row.JobTitle, row.Department, row.CompanyID, row.ManagerID).Error
	if err != nil {
		log.Fatalf("failed to insert user %s: %v", row.Email, err)
	}

	if err := db.Raw("SELECT id FROM users WHERE email = ?", row.Email).Row().Scan(&id); err != nil {
		log.Fatalf("failed to lookup user id for %s: %v", row.Email, err)
	}

	fmt.Println("Seeded user:", row.Email)
	return id
}
