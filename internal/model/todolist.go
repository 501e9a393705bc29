package model

import "time"

// TodoList groups todo items under a per-owner unique slug. The slug is
// the list's external address; the (user_id, slug) pair is enforced
// unique by the store.
type TodoList struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"user_id" gorm:"index:idx_list_user_slug,unique;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Slug        string     `json:"slug" gorm:"index:idx_list_user_slug,unique;not null"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Items       []TodoItem `json:"todo_items,omitempty" gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}
