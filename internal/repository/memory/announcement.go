package memory

import (
	"context"
	"sort"
	"sync"

	"student_dashboard_backend/internal/model"
	"student_dashboard_backend/internal/repository"
	"student_dashboard_backend/internal/util"
)

type AnnouncementRepository struct {
	mu    sync.RWMutex
	items map[string]model.Announcement
}

func NewAnnouncementRepository() *AnnouncementRepository {
	return &AnnouncementRepository{items: make(map[string]model.Announcement)}
}

func (r *AnnouncementRepository) Create(_ context.Context, a *model.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		a.ID = model.GenerateUUID()
	}
	now := nowFunc()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.items[a.ID] = *a
	return nil
}

func (r *AnnouncementRepository) FindByID(_ context.Context, id string) (*model.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok {
		return nil, util.ErrAnnouncementNotFound
	}
	return &a, nil
}

func (r *AnnouncementRepository) Update(_ context.Context, a *model.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[a.ID]; !ok {
		return util.ErrAnnouncementNotFound
	}
	a.UpdatedAt = nowFunc()
	r.items[a.ID] = *a
	return nil
}

func (r *AnnouncementRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return util.ErrAnnouncementNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *AnnouncementRepository) List(_ context.Context, filter repository.AnnouncementFilter) ([]model.Announcement, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []model.Announcement
	for _, a := range r.items {
		if filter.Course != "" && a.Course != "" && a.Course != filter.Course {
			continue
		}
		if filter.VisibleAt != nil && !a.VisibleAt(*filter.VisibleAt) {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return page(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}
