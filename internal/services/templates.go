package services

import (
	"context"
	"strings"

	"github.com/diewo77/product-organizer/internal/models"
	"github.com/diewo77/product-organizer/validation"
	"gorm.io/gorm"
)

type TemplateService struct {
	db *gorm.DB
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

func (s *TemplateService) Create(ctx context.Context, title, body string) (*models.Template, error) {
	v := validation.Violations{}
	validation.Required("title", title, v)
	validation.Required("body", body, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	t := models.Template{Title: strings.TrimSpace(title), Body: body}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, storeErr("create template", err)
	}
	return &t, nil
}

// List returns templates newest first.
func (s *TemplateService) List(ctx context.Context) ([]models.Template, error) {
	var out []models.Template
	err := s.db.WithContext(ctx).Order("date_added DESC, id DESC").Find(&out).Error
	return out, storeErr("list templates", err)
}

// ByTitle returns the newest template with that title.
func (s *TemplateService) ByTitle(ctx context.Context, title string) (*models.Template, error) {
	var t models.Template
	err := s.db.WithContext(ctx).Where("title = ?", strings.TrimSpace(title)).Order("id DESC").First(&t).Error
	if err != nil {
		return nil, notFoundOr("get template", err)
	}
	return &t, nil
}

func (s *TemplateService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Template{}, id)
	if res.Error != nil {
		return storeErr("delete template", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
