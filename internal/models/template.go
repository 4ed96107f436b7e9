package models

import "time"

// Template is a reusable message body.
type Template struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	DateAdded time.Time `gorm:"column:date_added;autoCreateTime" json:"date_added"`
}

func (Template) TableName() string { return "templates" }
