package models

import (
	"fmt"
	"strings"
	"time"
)

// NoName is shown for clients recorded without a display name.
const NoName = "(No Name)"

// Client is a recipient identified by a unique email.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"size:255" json:"name,omitempty"`
	DateAdded time.Time `gorm:"column:date_added;autoCreateTime" json:"date_added"`
}

func (Client) TableName() string { return "clients" }

// DisplayName returns the stored name or NoName.
func (c *Client) DisplayName() string {
	if strings.TrimSpace(c.Name) == "" {
		return NoName
	}
	return c.Name
}

// Label is the "Name <email>" form offered when picking a recipient.
func (c *Client) Label() string {
	return fmt.Sprintf("%s <%s>", c.DisplayName(), c.Email)
}

// ReceiptName is the name printed on receipts: the stored name, else the email local part.
func (c *Client) ReceiptName() string {
	if n := strings.TrimSpace(c.Name); n != "" {
		return n
	}
	local, _, _ := strings.Cut(c.Email, "@")
	return local
}
