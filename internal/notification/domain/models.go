// Package domain contains the notification models and contract.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/bigdino44/DemoManagerPro/pkg/db/pagination"
)

// Kind classifies a notification for display.
type Kind string

const (
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindSuccess Kind = "success"
)

// Valid reports whether the kind is known.
func (k Kind) Valid() bool {
	switch k {
	case KindInfo, KindWarning, KindSuccess:
		return true
	}
	return false
}

// Notification is an independent entity with no cross-store coupling.
type Notification struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Title     string       `gorm:"type:text;not null" json:"title"`
	Message   string       `gorm:"type:text;not null" json:"message"`
	Type      Kind         `gorm:"type:text;not null" json:"type"`
	Read      bool         `gorm:"not null;default:false;index" json:"read"`
	Timestamp time.Time    `gorm:"not null" json:"timestamp"`

	// DedupeKey lets producers (the reminder worker) emit at most one
	// notification per source event.
	DedupeKey *string `gorm:"type:text;uniqueIndex" json:"-"`
}

// TableName sets the database table name.
func (Notification) TableName() string { return "notifications" }

// AddNotificationRequest carries a new notification; Read and Timestamp
// are always set by the service.
type AddNotificationRequest struct {
	Title     string
	Message   string
	Type      Kind
	DedupeKey string
}

// Service maintains the collection and the incremental unread counter.
// UnreadCount always equals the number of rows with read = false.
type Service interface {
	Add(ctx context.Context, req AddNotificationRequest) (*Notification, error)
	// MarkAsRead flips one notification; the counter only moves when the
	// row actually transitions. Unknown id is a no-op.
	MarkAsRead(ctx context.Context, id snowflake.ID) (bool, error)
	MarkAllAsRead(ctx context.Context) (int64, error)
	// List returns notifications newest first, one cursor page at a
	// time.
	List(ctx context.Context, p pagination.Pagination) ([]Notification, pagination.PageInfo, error)
	UnreadCount() int64
}

var (
	ErrInvalidTitle = errors.New("invalid_title")
	ErrInvalidKind  = errors.New("invalid_kind")
)
