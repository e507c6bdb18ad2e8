package moderation

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

// Item is a moderated record. Both reviews and opinions carry an approved
// flag and a creation timestamp.
type Item interface {
	TableName() string
}

// Queue keeps the pending/approved split for one table. Items are created
// unapproved and approval only ever moves false to true.
type Queue[T Item] struct {
	db *gorm.DB
}

func NewQueue[T Item](db *gorm.DB) *Queue[T] {
	return &Queue[T]{db: db}
}

// Create inserts item. Callers pass it unapproved.
func (q *Queue[T]) Create(ctx context.Context, item *T) error {
	return q.db.WithContext(ctx).Create(item).Error
}

// Approved lists approved items, newest first.
func (q *Queue[T]) Approved(ctx context.Context) ([]T, error) {
	return q.list(ctx, true)
}

// Pending lists unapproved items, newest first.
func (q *Queue[T]) Pending(ctx context.Context) ([]T, error) {
	return q.list(ctx, false)
}

func (q *Queue[T]) list(ctx context.Context, approved bool) ([]T, error) {
	items := []T{}
	err := q.db.WithContext(ctx).
		Where("approved = ?", approved).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	return items, err
}

// Get loads one item by id.
func (q *Queue[T]) Get(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := q.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Approve marks the item approved and returns it. Approving twice is a no-op.
func (q *Queue[T]) Approve(ctx context.Context, id uint) (*T, error) {
	var item T
	err := q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&item).Update("approved", true).Error; err != nil {
			return err
		}
		return tx.First(&item, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Delete hard-deletes the item.
func (q *Queue[T]) Delete(ctx context.Context, id uint) error {
	var item T
	result := q.db.WithContext(ctx).Delete(&item, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
