package repository

import (
	"context"

	"julie/internal/cache"
	"julie/internal/models"

	"gorm.io/gorm"
)

// Listing orders accepted by List. OrderInsertion is the default.
const (
	OrderInsertion = "item_id"    // oldest first, stable across appends
	OrderNewest    = "created_at" // newest first
)

var orderClauses = map[string]string{
	OrderInsertion: "item_id ASC",
	OrderNewest:    "created_at DESC",
}

// WardrobeRepository defines the interface for wardrobe item operations
type WardrobeRepository interface {
	Create(ctx context.Context, item *models.WardrobeItem) error
	ListByUser(ctx context.Context, userID uint, order string) ([]models.WardrobeItem, error)
}

type wardrobeRepository struct {
	db *gorm.DB
}

// NewWardrobeRepository creates a new wardrobe repository
func NewWardrobeRepository(db *gorm.DB) WardrobeRepository {
	return &wardrobeRepository{db: db}
}

func (r *wardrobeRepository) Create(ctx context.Context, item *models.WardrobeItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateWardrobe(ctx, item.UserID, OrderInsertion, OrderNewest)
	return nil
}

// ListByUser returns the user's items in the requested order. Unknown order
// values fall back to insertion order rather than erroring.
func (r *wardrobeRepository) ListByUser(ctx context.Context, userID uint, order string) ([]models.WardrobeItem, error) {
	clause, ok := orderClauses[order]
	if !ok {
		order = OrderInsertion
		clause = orderClauses[OrderInsertion]
	}

	items := []models.WardrobeItem{}
	err := cache.Aside(ctx, cache.WardrobeKey(userID, order), &items, cache.WardrobeTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order(clause).
			Find(&items).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
