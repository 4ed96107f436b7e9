package services

import (
	"context"
	"errors"
	"strings"

	"github.com/diewo77/product-organizer/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

// EnsureClient records email as a client using the insert-or-ignore rule: a new
// email is inserted with name, an existing one is left untouched so a name guessed
// during a later send never overwrites the stored one. Renaming goes through Rename.
func (s *ClientService) EnsureClient(ctx context.Context, email, name string) (created bool, err error) {
	c := models.Client{Email: strings.TrimSpace(email), Name: strings.TrimSpace(name)}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&c)
	if res.Error != nil {
		return false, storeErr("ensure client", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// List returns clients newest first.
func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	var out []models.Client
	err := s.db.WithContext(ctx).Order("date_added DESC, id DESC").Find(&out).Error
	return out, storeErr("list clients", err)
}

func (s *ClientService) Get(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFoundOr("get client", err)
	}
	return &c, nil
}

func (s *ClientService) ByEmail(ctx context.Context, email string) (*models.Client, error) {
	var c models.Client
	if err := s.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&c).Error; err != nil {
		return nil, notFoundOr("get client by email", err)
	}
	return &c, nil
}

// Rename is the explicit edit action; it is the only way a stored name changes.
func (s *ClientService) Rename(ctx context.Context, id uint, name string) error {
	res := s.db.WithContext(ctx).Model(&models.Client{}).Where("id = ?", id).Update("name", strings.TrimSpace(name))
	if res.Error != nil {
		return storeErr("rename client", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ClientService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Client{}, id)
	if res.Error != nil {
		return storeErr("delete client", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func notFoundOr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return storeErr(op, err)
}
