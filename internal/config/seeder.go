package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"clubhub-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeedMasterData seeds initial master data
func SeedMasterData(db *gorm.DB) error {
	if err := seedTags(db); err != nil {
		return err
	}

	if err := seedPreVerifiedEmails(db); err != nil {
		return err
	}

	log.Println("✅ Master data seeded successfully")
	return nil
}

func seedTags(db *gorm.DB) error {
	tags := []models.Tag{
		{Name: "Academic"},
		{Name: "Arts"},
		{Name: "Community Service"},
		{Name: "Cultural"},
		{Name: "Engineering"},
		{Name: "Finance"},
		{Name: "Media"},
		{Name: "Professional"},
		{Name: "Recreational"},
		{Name: "Technology"},
	}

	for _, tag := range tags {
		var existing models.Tag
		err := db.Where("name = ?", tag.Name).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := db.Create(&tag).Error; err != nil {
					return err
				}
				log.Printf("   Created tag: %s", tag.Name)
			} else {
				return err
			}
		}
	}

	return nil
}

// seedPreVerifiedEmails loads the registration allow-list from the
// PRE_VERIFIED_EMAILS env var (comma-separated).
func seedPreVerifiedEmails(db *gorm.DB) error {
	raw := os.Getenv("PRE_VERIFIED_EMAILS")
	if raw == "" {
		return nil
	}

	for _, email := range strings.Split(raw, ",") {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}

		var existing models.PreVerifiedEmail
		err := db.Where("email = ?", email).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := db.Create(&models.PreVerifiedEmail{Email: email}).Error; err != nil {
					return err
				}
				log.Printf("   Added pre-verified email: %s", email)
			} else {
				return err
			}
		}
	}

	return nil
}
