package models

import (
	"encoding/json"
	"time"
)

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	CategoryID  uint      `gorm:"index;not null" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Price       float64   `gorm:"not null;check:price >= 0" json:"price"`
	Stock       int       `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	Image       string    `gorm:"not null" json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MarshalJSON emits the legacy "name" and "images" aliases next to the
// canonical title/image fields. Clients written against either naming
// keep working; the aliases exist only on the wire, never as state.
func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	images := []string{}
	if p.Image != "" {
		images = []string{p.Image}
	}
	return json.Marshal(struct {
		product
		Name   string   `json:"name"`
		Images []string `json:"images"`
	}{product(p), p.Title, images})
}
