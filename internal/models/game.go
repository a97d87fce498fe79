package models

import "time"

// Condition describes the physical state of a game cartridge or disc.
type Condition string

const (
	ConditionMint Condition = "mint"
	ConditionGood Condition = "good"
	ConditionFair Condition = "fair"
	ConditionPoor Condition = "poor"
)

// Valid reports whether c is one of the accepted condition values.
func (c Condition) Valid() bool {
	switch c {
	case ConditionMint, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// Game is a retro game listed by a user for trading.
type Game struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OwnerID       uint      `gorm:"not null;index" json:"owner_id"`
	Name          string    `gorm:"not null;index" json:"name"`
	Publisher     string    `gorm:"not null;index" json:"publisher"`
	YearPublished int       `gorm:"not null;index;check:year_published >= 1970 AND year_published <= 2100" json:"year_published"`
	System        string    `gorm:"not null;index" json:"system"`
	Condition     Condition `gorm:"type:text;not null;check:condition IN ('mint','good','fair','poor')" json:"condition"`
	PreviousOwners *int     `gorm:"check:previous_owners IS NULL OR previous_owners >= 0" json:"previous_owners"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
