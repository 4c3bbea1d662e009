package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	checklistdomain "github.com/bigdino44/DemoManagerPro/internal/checklist/domain"
	"github.com/bigdino44/DemoManagerPro/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID    *snowflake.Node
	itemrepo repository.Repository[checklistdomain.ChecklistItem]
}

func NewService(p ServiceParam) checklistdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("checklist.service"),

		genID:    p.GenID,
		itemrepo: repository.ProvideStore[checklistdomain.ChecklistItem](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req checklistdomain.CreateItemRequest) (*checklistdomain.ChecklistItem, error) {
	task := strings.TrimSpace(req.Task)
	if task == "" {
		return nil, checklistdomain.ErrInvalidTask
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, checklistdomain.ErrInvalidCategory
	}
	status := req.Status
	if status == "" {
		status = checklistdomain.StatusPending
	}
	if !status.Valid() {
		return nil, checklistdomain.ErrInvalidStatus
	}
	priority := req.Priority
	if priority == "" {
		priority = checklistdomain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, checklistdomain.ErrInvalidPriority
	}

	now := time.Now().UTC()
	item := &checklistdomain.ChecklistItem{
		ID:        s.genID.Generate(),
		Task:      task,
		Status:    status,
		Category:  category,
		Priority:  priority,
		Assignee:  strings.TrimSpace(req.Assignee),
		DueDate:   req.DueDate,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.itemrepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req checklistdomain.UpdateItemRequest) (bool, error) {
	values := map[string]any{}
	if req.Task != nil {
		task := strings.TrimSpace(*req.Task)
		if task == "" {
			return false, checklistdomain.ErrInvalidTask
		}
		values["task"] = task
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return false, checklistdomain.ErrInvalidStatus
		}
		values["status"] = *req.Status
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return false, checklistdomain.ErrInvalidCategory
		}
		values["category"] = category
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return false, checklistdomain.ErrInvalidPriority
		}
		values["priority"] = *req.Priority
	}
	if req.Assignee != nil {
		values["assignee"] = strings.TrimSpace(*req.Assignee)
	}
	if req.DueDate != nil {
		values["due_date"] = req.DueDate.UTC()
	}
	if req.Notes != nil {
		values["notes"] = *req.Notes
	}
	if len(values) == 0 {
		return false, nil
	}
	values["updated_at"] = time.Now().UTC()

	affected, err := s.itemrepo.Updates(ctx, int64(id), values)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) (bool, error) {
	affected, err := s.itemrepo.Delete(ctx, int64(id))
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ToggleStatus advances the cycle inside a transaction so concurrent
// toggles cannot skip a stage.
func (s *Service) ToggleStatus(ctx context.Context, id snowflake.ID) (checklistdomain.ItemStatus, error) {
	var next checklistdomain.ItemStatus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item checklistdomain.ChecklistItem
		err := tx.Where("id = ?", id).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return checklistdomain.ErrItemNotFound
		}
		if err != nil {
			return err
		}

		next = item.Status.Next()
		return tx.Model(&checklistdomain.ChecklistItem{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status":     next,
				"updated_at": time.Now().UTC(),
			}).Error
	})
	if err != nil {
		return "", err
	}
	return next, nil
}

func (s *Service) List(ctx context.Context) ([]checklistdomain.ChecklistItem, error) {
	return s.itemrepo.Find(ctx, nil)
}

func (s *Service) ListGrouped(ctx context.Context) ([]checklistdomain.CategoryGroup, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	index := map[string]int{}
	groups := make([]checklistdomain.CategoryGroup, 0)
	for _, item := range items {
		pos, ok := index[item.Category]
		if !ok {
			pos = len(groups)
			index[item.Category] = pos
			groups = append(groups, checklistdomain.CategoryGroup{Category: item.Category})
		}
		groups[pos].Items = append(groups[pos].Items, item)
	}
	return groups, nil
}
