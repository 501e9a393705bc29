package model

import "time"

// Item priorities. Anything outside this range is rejected at the API.
const (
	PriorityLow    = 0
	PriorityMedium = 1
	PriorityHigh   = 2
)

// TodoItem is a single entry in a list. It carries no owner column;
// ownership is always derived through the parent list.
type TodoItem struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	ListID      string     `json:"list_id" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	Priority    int        `json:"priority" gorm:"default:0"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
