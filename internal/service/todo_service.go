package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todoapi/internal/model"
	"todoapi/internal/repository"
	"todoapi/internal/slug"
)

// ListInput carries the fields of a list create request.
type ListInput struct {
	Title       string
	Description string
}

// ListUpdate carries a partial list update; nil fields are untouched.
type ListUpdate struct {
	Title       *string
	Description *string
}

// ItemInput carries the fields of an item create request.
type ItemInput struct {
	Title       string
	Description string
	Priority    *int
	DueDate     *time.Time
}

// ItemUpdate carries a partial item update; nil fields are untouched.
// SetDueDate distinguishes "clear the due date" from "leave it alone".
type ItemUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *int
	DueDate     *time.Time
	SetDueDate  bool
}

// TodoService owns lists and items. Every operation takes the owner id
// resolved by the caller; a resource belonging to someone else behaves
// exactly like a missing one.
type TodoService struct {
	listRepo *repository.ListRepository
	itemRepo *repository.ItemRepository
}

func NewTodoService(listRepo *repository.ListRepository, itemRepo *repository.ItemRepository) *TodoService {
	return &TodoService{listRepo: listRepo, itemRepo: itemRepo}
}

// CreateList creates a list with a slug unique among the owner's lists.
// The insert is authoritative: if a concurrent create takes the slug
// between the lookup and the insert, the store reports a duplicate key
// and the resolver runs again.
func (s *TodoService) CreateList(ctx context.Context, userID string, input ListInput) (*model.TodoList, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, validationf("Title is required")
	}
	base := slug.Make(title)
	if base == "" {
		return nil, validationf("Title must contain letters or numbers")
	}

	for {
		unique, err := s.resolveSlug(ctx, userID, base)
		if err != nil {
			return nil, err
		}
		list := model.TodoList{
			ID:          uuid.NewString(),
			UserID:      userID,
			Title:       title,
			Slug:        unique,
			Description: strings.TrimSpace(input.Description),
		}
		err = s.listRepo.Create(ctx, &list)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &list, nil
	}
}

// resolveSlug appends an increasing numeric suffix to base until the
// owner has no list with that slug. Collision scope is per owner; two
// owners may hold the same slug.
func (s *TodoService) resolveSlug(ctx context.Context, userID, base string) (string, error) {
	candidate := base
	for counter := 1; ; counter++ {
		exists, err := s.listRepo.SlugExists(ctx, userID, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter+1)
	}
}

// Lists returns the owner's lists, newest first, with item counts.
func (s *TodoService) Lists(ctx context.Context, userID string) ([]repository.ListWithCounts, error) {
	return s.listRepo.ListByOwner(ctx, userID)
}

// GetList returns the owner's list with items, oldest item first.
func (s *TodoService) GetList(ctx context.Context, userID, slugStr string) (*model.TodoList, error) {
	list, err := s.listRepo.FindBySlugWithItems(ctx, userID, slugStr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find list: %w", err)
	}
	return list, nil
}

// UpdateList applies the present fields. The slug is stable: renaming a
// list does not change its address.
func (s *TodoService) UpdateList(ctx context.Context, userID, slugStr string, update ListUpdate) (*model.TodoList, error) {
	updates := map[string]interface{}{}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, validationf("Title cannot be empty")
		}
		updates["title"] = title
	}
	if update.Description != nil {
		updates["description"] = strings.TrimSpace(*update.Description)
	}
	if len(updates) == 0 {
		return nil, validationf("At least one field is required")
	}

	list, err := s.listRepo.Update(ctx, userID, slugStr, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return list, nil
}

// DeleteList removes the owner's list and its items. A list the owner
// does not have, whether missing or someone else's, is ErrNotFound.
func (s *TodoService) DeleteList(ctx context.Context, userID, slugStr string) error {
	n, err := s.listRepo.Delete(ctx, userID, slugStr)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateItem adds an item to the owner's list.
func (s *TodoService) CreateItem(ctx context.Context, userID, slugStr string, input ItemInput) (*model.TodoItem, error) {
	list, err := s.ownedList(ctx, userID, slugStr)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, validationf("Title is required")
	}
	priority := model.PriorityLow
	if input.Priority != nil {
		if err := checkPriority(*input.Priority); err != nil {
			return nil, err
		}
		priority = *input.Priority
	}

	item := model.TodoItem{
		ID:          uuid.NewString(),
		ListID:      list.ID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Priority:    priority,
		DueDate:     input.DueDate,
	}
	if err := s.itemRepo.Create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem applies the present fields to an item in the owner's list.
// A request with no recognized fields is a validation error, not a
// silent no-op.
func (s *TodoService) UpdateItem(ctx context.Context, userID, slugStr, itemID string, update ItemUpdate) (*model.TodoItem, error) {
	list, err := s.ownedList(ctx, userID, slugStr)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, validationf("Title cannot be empty")
		}
		updates["title"] = title
	}
	if update.Description != nil {
		updates["description"] = strings.TrimSpace(*update.Description)
	}
	if update.Completed != nil {
		updates["completed"] = *update.Completed
	}
	if update.Priority != nil {
		if err := checkPriority(*update.Priority); err != nil {
			return nil, err
		}
		updates["priority"] = *update.Priority
	}
	if update.SetDueDate {
		updates["due_date"] = update.DueDate
	}
	if len(updates) == 0 {
		return nil, validationf("At least one field is required")
	}

	item, err := s.itemRepo.Update(ctx, list.ID, itemID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item from the owner's list.
func (s *TodoService) DeleteItem(ctx context.Context, userID, slugStr, itemID string) error {
	list, err := s.ownedList(ctx, userID, slugStr)
	if err != nil {
		return err
	}
	n, err := s.itemRepo.Delete(ctx, list.ID, itemID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ownedList resolves the parent list for item operations. Items have no
// owner column of their own; this walk is what scopes them to the
// caller.
func (s *TodoService) ownedList(ctx context.Context, userID, slugStr string) (*model.TodoList, error) {
	list, err := s.listRepo.FindBySlug(ctx, userID, slugStr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find list: %w", err)
	}
	return list, nil
}

func checkPriority(p int) error {
	if p < model.PriorityLow || p > model.PriorityHigh {
		return validationf("Priority must be 0, 1 or 2")
	}
	return nil
}
