package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	notificationdomain "github.com/bigdino44/DemoManagerPro/internal/notification/domain"
	"github.com/bigdino44/DemoManagerPro/internal/observability/metrics"
	"github.com/bigdino44/DemoManagerPro/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID   *snowflake.Node
	metrics *metrics.Metrics

	// unread mirrors COUNT(read = false). Seeded once from the table,
	// then adjusted under the mutex by every mutation.
	mu     sync.Mutex
	unread int64
	seeded bool
}

func NewService(p ServiceParam) *Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("notification.service"),

		genID:   p.GenID,
		metrics: p.Metrics,
	}
}

func (s *Service) Add(ctx context.Context, req notificationdomain.AddNotificationRequest) (*notificationdomain.Notification, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, notificationdomain.ErrInvalidTitle
	}
	kind := req.Type
	if kind == "" {
		kind = notificationdomain.KindInfo
	}
	if !kind.Valid() {
		return nil, notificationdomain.ErrInvalidKind
	}

	row := &notificationdomain.Notification{
		ID:        s.genID.Generate(),
		Title:     title,
		Message:   req.Message,
		Type:      kind,
		Read:      false,
		Timestamp: time.Now().UTC(),
	}
	if key := strings.TrimSpace(req.DedupeKey); key != "" {
		row.DedupeKey = &key
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Deduped: an earlier notification with the same key exists.
		return nil, nil
	}

	s.adjustUnread(ctx, 1)
	s.metrics.ObserveNotification(string(kind))
	return row, nil
}

func (s *Service) MarkAsRead(ctx context.Context, id snowflake.ID) (bool, error) {
	// The read = false guard keeps the counter honest when the same id
	// is marked twice.
	result := s.db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("id = ? AND read = ?", id, false).
		Update("read", true)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	s.adjustUnread(ctx, -result.RowsAffected)
	return true, nil
}

func (s *Service) MarkAllAsRead(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("read = ?", false).
		Update("read", true)
	if result.Error != nil {
		return 0, result.Error
	}

	s.mu.Lock()
	s.unread = 0
	s.seeded = true
	s.mu.Unlock()
	s.metrics.SetUnread(0)
	return result.RowsAffected, nil
}

// List pages newest first. Snowflake ids are time ordered, so the id
// cursor preserves timestamp order.
func (s *Service) List(ctx context.Context, p pagination.Pagination) ([]notificationdomain.Notification, pagination.PageInfo, error) {
	limit := pagination.Limit(int32(p.PageSize))

	query := s.db.WithContext(ctx).Order("id desc").Limit(limit + 1)
	if lastID := pagination.DecodeToken(p.PageToken); lastID > 0 {
		query = query.Where("id < ?", lastID)
	}

	var rows []notificationdomain.Notification
	if err := query.Find(&rows).Error; err != nil {
		return nil, pagination.PageInfo{}, err
	}

	var info pagination.PageInfo
	if len(rows) > limit {
		rows = rows[:limit]
		info.NextPageToken = pagination.EncodeToken(int64(rows[limit-1].ID))
	}
	return rows, info, nil
}

func (s *Service) UnreadCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seedLocked(context.Background())
	return s.unread
}

func (s *Service) adjustUnread(ctx context.Context, delta int64) {
	s.mu.Lock()
	s.seedLocked(ctx)
	s.unread += delta
	if s.unread < 0 {
		s.unread = 0
	}
	current := s.unread
	s.mu.Unlock()
	s.metrics.SetUnread(current)
}

// seedLocked initializes the counter from the table on first use. Must
// be called with the mutex held.
func (s *Service) seedLocked(ctx context.Context) {
	if s.seeded {
		return
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("read = ?", false).
		Count(&count).Error
	if err != nil {
		s.log.Warn("seed unread counter", zap.Error(err))
		return
	}
	s.unread = count
	s.seeded = true
}
