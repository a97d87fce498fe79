// Package models contains data structures for the application's domain records.
package models

import "time"

// User represents a registered member of the exchange. Email is stored
// lowercase so uniqueness is case-insensitive.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"not null" json:"-"`
	StreetAddress string    `gorm:"not null" json:"street_address"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Deleting a user removes their games (and, transitively, any offers
	// referencing those games).
	Games []Game `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}
