package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"retroexchange/internal/models"
)

// OfferRepository defines the interface for trade offer data operations.
// Offers are never deleted through this interface; they only go away when a
// referenced game or user is removed.
type OfferRepository interface {
	GetByID(ctx context.Context, id uint) (*models.TradeOffer, error)
	Create(ctx context.Context, offer *models.TradeOffer) error
	UpdateStatus(ctx context.Context, offer *models.TradeOffer, status models.OfferStatus) error
	// ListIncoming returns offers targeting games currently owned by ownerID.
	ListIncoming(ctx context.Context, ownerID uint) ([]models.TradeOffer, error)
	// ListOutgoing returns offers created by offererID.
	ListOutgoing(ctx context.Context, offererID uint) ([]models.TradeOffer, error)
}

type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository.
func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) GetByID(ctx context.Context, id uint) (*models.TradeOffer, error) {
	var offer models.TradeOffer
	if err := r.db.WithContext(ctx).First(&offer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Offer")
		}
		return nil, models.NewInternalError(err)
	}
	return &offer, nil
}

func (r *offerRepository) Create(ctx context.Context, offer *models.TradeOffer) error {
	if err := r.db.WithContext(ctx).Create(offer).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *offerRepository) UpdateStatus(ctx context.Context, offer *models.TradeOffer, status models.OfferStatus) error {
	if err := r.db.WithContext(ctx).Model(offer).Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *offerRepository) ListIncoming(ctx context.Context, ownerID uint) ([]models.TradeOffer, error) {
	var offers []models.TradeOffer
	err := r.db.WithContext(ctx).
		Joins("JOIN games ON games.id = trade_offers.requested_game_id").
		Where("games.owner_id = ?", ownerID).
		Order("trade_offers.id DESC").
		Find(&offers).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return offers, nil
}

func (r *offerRepository) ListOutgoing(ctx context.Context, offererID uint) ([]models.TradeOffer, error) {
	var offers []models.TradeOffer
	err := r.db.WithContext(ctx).
		Where("offerer_user_id = ?", offererID).
		Order("id DESC").
		Find(&offers).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return offers, nil
}
