package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"retroexchange/internal/models"
)

// GameFilter carries the optional listing filters. Zero values mean "not
// filtered"; all supplied filters are combined with AND.
type GameFilter struct {
	Name      string
	Publisher string
	System    string
	Condition models.Condition
	Year      *int
	YearMin   *int
	YearMax   *int
	OwnerID   *uint
}

func (f GameFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	if f.Publisher != "" {
		q = q.Where("LOWER(publisher) LIKE ?", "%"+strings.ToLower(f.Publisher)+"%")
	}
	if f.System != "" {
		q = q.Where("LOWER(system) LIKE ?", "%"+strings.ToLower(f.System)+"%")
	}
	if f.Condition != "" {
		q = q.Where("condition = ?", f.Condition)
	}
	if f.Year != nil {
		q = q.Where("year_published = ?", *f.Year)
	}
	if f.YearMin != nil {
		q = q.Where("year_published >= ?", *f.YearMin)
	}
	if f.YearMax != nil {
		q = q.Where("year_published <= ?", *f.YearMax)
	}
	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	return q
}

// GameRepository defines the interface for game data operations.
type GameRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Game, error)
	Create(ctx context.Context, game *models.Game) error
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, id uint) error
	// List returns one page of games matching the filter, newest first,
	// plus the total count of the filtered set independent of paging.
	List(ctx context.Context, filter GameFilter, page, pageSize int) ([]models.Game, int64, error)
}

type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) GetByID(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Game")
		}
		return nil, models.NewInternalError(err)
	}
	return &game, nil
}

func (r *gameRepository) Create(ctx context.Context, game *models.Game) error {
	if err := r.db.WithContext(ctx).Create(game).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *gameRepository) Update(ctx context.Context, game *models.Game) error {
	if err := r.db.WithContext(ctx).Save(game).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the game and every offer referencing it in one transaction.
func (r *gameRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("requested_game_id = ? OR offered_game_id = ?", id, id).
			Delete(&models.TradeOffer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Game{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *gameRepository) List(ctx context.Context, filter GameFilter, page, pageSize int) ([]models.Game, int64, error) {
	var total int64
	if err := filter.apply(r.db.WithContext(ctx).Model(&models.Game{})).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var games []models.Game
	err := filter.apply(r.db.WithContext(ctx).Model(&models.Game{})).
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&games).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return games, total, nil
}
