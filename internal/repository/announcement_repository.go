package repository

import (
	"context"

	"student_dashboard_backend/internal/model"
	"student_dashboard_backend/internal/util"

	"gorm.io/gorm"
)

type AnnouncementRepository struct {
	DB *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{DB: db}
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	if err := r.DB.WithContext(ctx).Create(a).Error; err != nil {
		return storageError("create announcement", err)
	}
	return nil
}

func (r *AnnouncementRepository) FindByID(ctx context.Context, id string) (*model.Announcement, error) {
	var a model.Announcement
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, lookupError("find announcement", err, util.ErrAnnouncementNotFound)
	}
	return &a, nil
}

func (r *AnnouncementRepository) Update(ctx context.Context, a *model.Announcement) error {
	if err := r.DB.WithContext(ctx).Save(a).Error; err != nil {
		return storageError("update announcement", err)
	}
	return nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&model.Announcement{}, "id = ?", id)
	if res.Error != nil {
		return storageError("delete announcement", res.Error)
	}
	if res.RowsAffected == 0 {
		return util.ErrAnnouncementNotFound
	}
	return nil
}

func (r *AnnouncementRepository) List(ctx context.Context, filter AnnouncementFilter) ([]model.Announcement, int64, error) {
	query := r.DB.WithContext(ctx).Model(&model.Announcement{})
	if filter.Course != "" {
		query = query.Where("course = ? OR course = ''", filter.Course)
	}
	if filter.VisibleAt != nil {
		query = query.Where("is_published = ? AND (expires_at IS NULL OR expires_at > ?)", true, *filter.VisibleAt)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, storageError("count announcements", err)
	}

	if filter.Limit > 0 {
		query = query.Offset(offset(filter.Page, filter.Limit)).Limit(filter.Limit)
	}
	var items []model.Announcement
	if err := query.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, 0, storageError("list announcements", err)
	}
	return items, total, nil
}
