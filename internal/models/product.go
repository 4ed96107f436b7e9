package models

import (
	"path/filepath"
	"strings"
	"time"
)

// Product is a catalogued digital good backed by a copied file.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Tags      string    `gorm:"size:500" json:"tags,omitempty"`
	Category  string    `gorm:"size:255" json:"category,omitempty"`
	FilePath  string    `gorm:"column:filepath;size:1024;not null" json:"filepath"`
	DateAdded time.Time `gorm:"column:date_added;autoCreateTime" json:"date_added"`
}

func (Product) TableName() string { return "products" }

// FileName returns the base name of the stored file, used as attachment name.
func (p *Product) FileName() string {
	return filepath.Base(p.FilePath)
}

// TagList splits the comma-separated tags, dropping blanks.
func (p *Product) TagList() []string {
	var out []string
	for _, t := range strings.Split(p.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
