package db

import (
	"errors"

	"github.com/diewo77/product-organizer/internal/models"
	"gorm.io/gorm"
)

// DefaultTemplates are inserted once so a fresh install has a body to start from.
var DefaultTemplates = []models.Template{
	{Title: "File delivery", Body: "Please find the attached file."},
	{Title: "Thank you", Body: "Thank you for your purchase! Your file is attached to this email."},
}

// Seed inserts missing default templates. It is idempotent.
func Seed(conn *gorm.DB) error {
	for _, tpl := range DefaultTemplates {
		var existing models.Template
		err := conn.Where("title = ?", tpl.Title).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		tpl := tpl
		if err := conn.Create(&tpl).Error; err != nil {
			return err
		}
	}
	return nil
}
