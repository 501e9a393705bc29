package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"todoapi/internal/model"
)

// ItemRepository handles CRUD for todo items. Items carry no owner
// column, so callers resolve the parent list through ListRepository
// first and pass its id here.
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *model.TodoItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, listID, itemID string) (*model.TodoItem, error) {
	var item model.TodoItem
	if err := r.db.WithContext(ctx).Where("list_id = ? AND id = ?", listID, itemID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies the given column values to an item in the list and
// returns the fresh row.
func (r *ItemRepository) Update(ctx context.Context, listID, itemID string, updates map[string]interface{}) (*model.TodoItem, error) {
	item, err := r.FindByID(ctx, listID, itemID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(item).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

// Delete removes an item from the list. Returns how many items matched.
func (r *ItemRepository) Delete(ctx context.Context, listID, itemID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("list_id = ? AND id = ?", listID, itemID).
		Delete(&model.TodoItem{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete item: %w", res.Error)
	}
	return res.RowsAffected, nil
}
