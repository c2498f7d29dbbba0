package boot

import (
	"iea/src/db"
	"iea/src/lib/storage"
	"iea/src/models"
	"log"
	"os"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.Ticket{},
		&models.Message{},
		&models.Sponsor{},
		&models.Speaker{},
		&models.TeamMember{},
		&models.Testimonial{},
		&models.Story{},
		&models.Highlight{},
		&models.SummitInfo{},
		&models.RegistrationConfig{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitUploadsDir makes sure the local asset directory exists before the
// first upload lands.
func InitUploadsDir() {
	if os.Getenv("STORAGE_BACKEND") == "s3" {
		return
	}
	dir := storage.UploadsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("Could not create uploads directory [%s]: %s\n", dir, err.Error())
	}
}
