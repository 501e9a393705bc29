package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todoapi/internal/model"
)

// ListWithCounts pairs a todo list with aggregate item counts for the
// overview endpoint.
type ListWithCounts struct {
	model.TodoList
	ItemsCount     int64 `json:"items_count"`
	CompletedCount int64 `json:"completed_count"`
}

// ListRepository handles CRUD for todo lists. Every query is scoped to
// an owner; a list is never addressable across owners.
type ListRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

func (r *ListRepository) Create(ctx context.Context, list *model.TodoList) error {
	if err := r.db.WithContext(ctx).Create(list).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return fmt.Errorf("create list: %w", err)
	}
	return nil
}

// SlugExists reports whether the owner already has a list with the slug.
func (r *ListRepository) SlugExists(ctx context.Context, userID, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.TodoList{}).
		Where("user_id = ? AND slug = ?", userID, slug).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return count > 0, nil
}

// ListByOwner returns the owner's lists, newest first, each with item
// and completed counts.
func (r *ListRepository) ListByOwner(ctx context.Context, userID string) ([]ListWithCounts, error) {
	var lists []model.TodoList
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}

	type counts struct {
		ListID    string
		Total     int64
		Completed int64
	}
	var rows []counts
	if err := r.db.WithContext(ctx).Model(&model.TodoItem{}).
		Select("list_id, COUNT(*) AS total, SUM(CASE WHEN completed THEN 1 ELSE 0 END) AS completed").
		Where("list_id IN (SELECT id FROM todo_lists WHERE user_id = ?)", userID).
		Group("list_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	byList := make(map[string]counts, len(rows))
	for _, row := range rows {
		byList[row.ListID] = row
	}

	out := make([]ListWithCounts, 0, len(lists))
	for _, list := range lists {
		c := byList[list.ID]
		out = append(out, ListWithCounts{
			TodoList:       list,
			ItemsCount:     c.Total,
			CompletedCount: c.Completed,
		})
	}
	return out, nil
}

// FindBySlug returns the owner's list for the slug, without items.
func (r *ListRepository) FindBySlug(ctx context.Context, userID, slug string) (*model.TodoList, error) {
	var list model.TodoList
	if err := r.db.WithContext(ctx).Where("user_id = ? AND slug = ?", userID, slug).
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// FindBySlugWithItems returns the owner's list with items sorted by
// creation time, oldest first.
func (r *ListRepository) FindBySlugWithItems(ctx context.Context, userID, slug string) (*model.TodoList, error) {
	var list model.TodoList
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("user_id = ? AND slug = ?", userID, slug).
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// Update applies the given column values to the owner's list and returns
// the fresh row, or gorm.ErrRecordNotFound if the owner has no such list.
func (r *ListRepository) Update(ctx context.Context, userID, slug string, updates map[string]interface{}) (*model.TodoList, error) {
	list, err := r.FindBySlug(ctx, userID, slug)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(list).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}
	return list, nil
}

// Delete removes the owner's list and, through the FK cascade, its
// items. Returns how many lists matched.
func (r *ListRepository) Delete(ctx context.Context, userID, slug string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND slug = ?", userID, slug).
		Delete(&model.TodoList{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete list: %w", res.Error)
	}
	return res.RowsAffected, nil
}
