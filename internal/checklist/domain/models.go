// Package domain contains the preparation checklist models and contract.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// ItemStatus cycles pending -> in_progress -> completed -> pending.
type ItemStatus string

const (
	StatusPending    ItemStatus = "pending"
	StatusInProgress ItemStatus = "in_progress"
	StatusCompleted  ItemStatus = "completed"
)

// Next returns the status that follows in the toggle cycle.
func (s ItemStatus) Next() ItemStatus {
	switch s {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return StatusPending
	}
}

// Valid reports whether the status is a known stage.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ItemPriority orders checklist work.
type ItemPriority string

const (
	PriorityHigh   ItemPriority = "high"
	PriorityMedium ItemPriority = "medium"
	PriorityLow    ItemPriority = "low"
)

// Valid reports whether the priority is known.
func (p ItemPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ChecklistItem is an independent preparation task: no relationship to
// demos or customers.
type ChecklistItem struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	Task     string       `gorm:"type:text;not null" json:"task"`
	Status   ItemStatus   `gorm:"type:text;not null;default:pending" json:"status"`
	Category string       `gorm:"type:text;not null;index" json:"category"`
	Priority ItemPriority `gorm:"type:text;not null" json:"priority"`
	Assignee string       `gorm:"type:text" json:"assignee,omitempty"`
	DueDate  *time.Time   `json:"due_date,omitempty"`
	Notes    string       `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (ChecklistItem) TableName() string { return "checklist_items" }

// CategoryGroup is one category bucket in display order.
type CategoryGroup struct {
	Category string          `json:"category"`
	Items    []ChecklistItem `json:"items"`
}

// CreateItemRequest carries the new-task form fields.
type CreateItemRequest struct {
	Task     string
	Status   ItemStatus
	Category string
	Priority ItemPriority
	Assignee string
	DueDate  *time.Time
	Notes    string
}

// UpdateItemRequest is a partial update; nil fields are left untouched.
type UpdateItemRequest struct {
	Task     *string
	Status   *ItemStatus
	Category *string
	Priority *ItemPriority
	Assignee *string
	DueDate  *time.Time
	Notes    *string
}

// Service is the preparation checklist contract.
type Service interface {
	Create(ctx context.Context, req CreateItemRequest) (*ChecklistItem, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateItemRequest) (bool, error)
	Delete(ctx context.Context, id snowflake.ID) (bool, error)
	// ToggleStatus advances the item one step through the status cycle
	// and returns the new status.
	ToggleStatus(ctx context.Context, id snowflake.ID) (ItemStatus, error)
	List(ctx context.Context) ([]ChecklistItem, error)
	// ListGrouped buckets items by category, categories in first-seen
	// order and items in insertion order.
	ListGrouped(ctx context.Context) ([]CategoryGroup, error)
}

var (
	ErrInvalidTask     = errors.New("invalid_task")
	ErrInvalidCategory = errors.New("invalid_category")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidPriority = errors.New("invalid_priority")
	ErrItemNotFound    = errors.New("item_not_found")
)
