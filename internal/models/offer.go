package models

import "time"

// OfferStatus tracks the trade offer lifecycle. Offers start pending and are
// moved to accepted or rejected by an explicit decision; there are no other
// transitions.
type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
)

// Valid reports whether s is one of the accepted status values.
func (s OfferStatus) Valid() bool {
	switch s {
	case OfferPending, OfferAccepted, OfferRejected:
		return true
	}
	return false
}

// Terminal reports whether the status can no longer change.
func (s OfferStatus) Terminal() bool {
	return s == OfferAccepted || s == OfferRejected
}

// TradeOffer is a proposal by the offerer to swap their offered game for the
// requested game. Accepting an offer records the decision only; ownership
// transfer happens outside the API.
type TradeOffer struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	RequestedGameID uint        `gorm:"not null;index" json:"requested_game_id"`
	OfferedGameID   uint        `gorm:"not null;index" json:"offered_game_id"`
	OffererUserID   uint        `gorm:"not null;index" json:"offerer_user_id"`
	Status          OfferStatus `gorm:"type:text;not null;default:pending;index;check:status IN ('pending','accepted','rejected')" json:"status"`
	CreatedAt       time.Time   `gorm:"index" json:"created_at"`

	RequestedGame *Game `gorm:"foreignKey:RequestedGameID;constraint:OnDelete:CASCADE" json:"-"`
	OfferedGame   *Game `gorm:"foreignKey:OfferedGameID;constraint:OnDelete:CASCADE" json:"-"`
	Offerer       *User `gorm:"foreignKey:OffererUserID;constraint:OnDelete:CASCADE" json:"-"`
}
