package repository

import "gorm.io/gorm"

const DefaultPageSize = 10

// Page is one slice of an ordered listing.
type Page[T any] struct {
	Data        []T   `json:"data"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// Paginate counts and fetches page from the query base builds. base is called
// once per statement so scopes and conditions are not shared between them.
// decorate adds ordering and preloads to the fetch only. A page past the
// last one has no data.
func Paginate[T any](base func() *gorm.DB, page, perPage int, decorate func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPageSize
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, err
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	items := make([]T, 0, perPage)
	// pages past the end are empty; skipping the fetch keeps the offset in range
	if page <= lastPage {
		q := base()
		if decorate != nil {
			q = decorate(q)
		}
		if err := q.Offset((page - 1) * perPage).Limit(perPage).Find(&items).Error; err != nil {
			return nil, err
		}
	}

	return &Page[T]{
		Data:        items,
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}, nil
}
