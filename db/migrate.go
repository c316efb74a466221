package db

import (
	"fmt"
	"log"

	"github.com/holistichub/practitioner-hub/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Practitioner{},
		&models.Specialty{},
		&models.Condition{},
		&models.Insurance{},
		&models.Lead{},
		&models.Consultation{},
		&models.Review{},
		&models.Article{},
		&models.Event{},
		&models.EventRegistration{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	seedRoles()

	fmt.Println("✅ Migrations applied successfully!")
}

// seedRoles creates the fixed role set if missing.
func seedRoles() {
	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "Administrator with full access"},
		{Name: models.RoleModerator, Description: "Moderator for reviews and content"},
		{Name: models.RolePractitioner, Description: "Directory-listed practitioner"},
		{Name: models.RolePatient, Description: "Patient who can request consultations"},
	}

	for _, role := range roles {
		var existing models.Role
		if DB.Where("name = ?", role.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&role)
		}
	}
}
