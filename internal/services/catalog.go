package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/diewo77/product-organizer/internal/models"
	"github.com/diewo77/product-organizer/validation"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

// CatalogService manages products and the copies of their files under the files root.
type CatalogService struct {
	db   *gorm.DB
	fs   afero.Fs
	root string
	log  logrus.FieldLogger
}

func NewCatalogService(db *gorm.DB, fs afero.Fs, root string, log logrus.FieldLogger) *CatalogService {
	return &CatalogService{db: db, fs: fs, root: root, log: log}
}

type NewProduct struct {
	SourcePath string
	Title      string
	Tags       string
	Category   string
}

// Add copies the source file into the files root and records the product.
func (s *CatalogService) Add(ctx context.Context, in NewProduct) (*models.Product, error) {
	v := validation.Violations{}
	validation.Required("title", in.Title, v)
	validation.Required("file", in.SourcePath, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	dest, err := copyInto(s.fs, in.SourcePath, s.root)
	if err != nil {
		return nil, fmt.Errorf("copy %s: %w", in.SourcePath, err)
	}
	p := models.Product{
		Title:    strings.TrimSpace(in.Title),
		Tags:     strings.TrimSpace(in.Tags),
		Category: strings.TrimSpace(in.Category),
		FilePath: dest,
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		if rmErr := removeIfExists(s.fs, dest); rmErr != nil {
			s.log.WithError(rmErr).WithField("file", dest).Warn("orphan product file left behind")
		}
		return nil, storeErr("create product", err)
	}
	s.log.WithFields(logrus.Fields{"product": p.ID, "file": dest}).Info("product added")
	return &p, nil
}

// List returns products newest first.
func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := s.db.WithContext(ctx).Order("date_added DESC, id DESC").Find(&out).Error
	return out, storeErr("list products", err)
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFoundOr("get product", err)
	}
	return &p, nil
}

// Search matches keyword against title, tags and category, case-insensitively.
func (s *CatalogService) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	k := strings.TrimSpace(keyword)
	if k == "" {
		return s.List(ctx)
	}
	like := "%" + strings.ToLower(k) + "%"
	var out []models.Product
	err := s.db.WithContext(ctx).
		Where("lower(title) LIKE ? OR lower(tags) LIKE ? OR lower(category) LIKE ?", like, like, like).
		Order("date_added DESC, id DESC").
		Find(&out).Error
	return out, storeErr("search products", err)
}

// Delete removes the product row and then its file.
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Product{}, p.ID).Error; err != nil {
		return storeErr("delete product", err)
	}
	if err := removeIfExists(s.fs, p.FilePath); err != nil {
		return fmt.Errorf("remove %s: %w", p.FilePath, err)
	}
	return nil
}

var csvHeader = []string{"Title", "Tags", "Category", "File", "Date Added"}

// ExportCSV writes every product to w and returns the number of rows written.
func (s *CatalogService) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return 0, storeErr("export products", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}
	for _, p := range products {
		row := []string{p.Title, p.Tags, p.Category, p.FilePath, p.DateAdded.Format("2006-01-02")}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(products), cw.Error()
}
