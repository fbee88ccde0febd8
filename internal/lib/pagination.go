package lib

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Paginatable defines the interface for models that can be paginated.
// The model must have an ID and a CreatedAt field.
type Paginatable interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
}

// Paginate applies cursor-based keyset pagination to a GORM query ordered by
// `created_at DESC, id DESC`. The cursor is the ID of the last item from the
// previous page.
func Paginate[T Paginatable](db *gorm.DB, query *gorm.DB, cursor string, limit int) (*gorm.DB, error) {
	if cursor == "" {
		return query.Limit(limit), nil
	}

	if _, err := uuid.Parse(cursor); err != nil {
		return query.Where("1 = 0"), nil
	}

	var cursorModel T
	err := db.Model(&cursorModel).Where("id = ?", cursor).First(&cursorModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Unknown cursor yields an empty page
			return query.Where("1 = 0"), nil
		}
		return nil, err
	}

	paginatedQuery := query.Where(
		"(created_at < ?) OR (created_at = ? AND id < ?)",
		cursorModel.GetCreatedAt(),
		cursorModel.GetCreatedAt(),
		cursorModel.GetID(),
	).Limit(limit)

	return paginatedQuery, nil
}

// ClampLimit replaces non-positive or oversized page sizes with max.
func ClampLimit(limit int, max int) int {
	if limit <= 0 || limit > max {
		return max
	}
	return limit
}

// NextPage trims a result fetched with limit+1 rows and returns the cursor
// for the following page, or "" when there is none.
func NextPage[T Paginatable](items []T, limit int) ([]T, string) {
	if len(items) <= limit {
		return items, ""
	}
	items = items[:limit]
	return items, items[limit-1].GetID().String()
}
