// Package repository provides a small generic gorm store used by the
// domain services for the common create/find/update plumbing.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository is the generic persistence surface for a single model type.
type Repository[T any] interface {
	Create(ctx context.Context, record *T) error
	CreateTx(ctx context.Context, tx *gorm.DB, record *T) error
	FindByID(ctx context.Context, id int64) (*T, error)
	Find(ctx context.Context, conds map[string]any) ([]T, error)
	Updates(ctx context.Context, id int64, values map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context, conds map[string]any) (int64, error)
}

type store[T any] struct {
	db *gorm.DB
}

// ProvideStore builds a Repository bound to the given connection.
func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (s *store[T]) Create(ctx context.Context, record *T) error {
	return s.CreateTx(ctx, s.db, record)
}

func (s *store[T]) CreateTx(ctx context.Context, tx *gorm.DB, record *T) error {
	if tx == nil {
		tx = s.db
	}
	return tx.WithContext(ctx).Create(record).Error
}

// FindByID returns (nil, nil) when no row matches, so callers can map a
// miss to their own sentinel.
func (s *store[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var record T
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *store[T]) Find(ctx context.Context, conds map[string]any) ([]T, error) {
	var records []T
	query := s.db.WithContext(ctx).Model(new(T))
	for column, value := range conds {
		query = query.Where(column+" = ?", value)
	}
	if err := query.Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Updates applies a partial update and reports how many rows changed.
func (s *store[T]) Updates(ctx context.Context, id int64, values map[string]any) (int64, error) {
	if len(values) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(values)
	return result.RowsAffected, result.Error
}

func (s *store[T]) Delete(ctx context.Context, id int64) (int64, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	return result.RowsAffected, result.Error
}

func (s *store[T]) Count(ctx context.Context, conds map[string]any) (int64, error) {
	var total int64
	query := s.db.WithContext(ctx).Model(new(T))
	for column, value := range conds {
		query = query.Where(column+" = ?", value)
	}
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
