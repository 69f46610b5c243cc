package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"student_dashboard_backend/internal/model"
	"student_dashboard_backend/internal/repository"
	"student_dashboard_backend/internal/util"
	"student_dashboard_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AnnouncementService struct {
	Repo    repository.AnnouncementStore
	Storage *StorageService

	now func() time.Time
}

func NewAnnouncementService(repo repository.AnnouncementStore, storage *StorageService) *AnnouncementService {
	return &AnnouncementService{Repo: repo, Storage: storage, now: time.Now}
}

type AnnouncementReq struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Content     string     `json:"content" binding:"required"`
	Course      string     `json:"course" binding:"max=100"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low normal high"`
	IsPublished bool       `json:"isPublished"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

type AnnouncementUpdateReq struct {
	Title       *string    `json:"title" binding:"omitempty,max=255"`
	Content     *string    `json:"content"`
	Course      *string    `json:"course" binding:"omitempty,max=100"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low normal high"`
	IsPublished *bool      `json:"isPublished"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	// ClearExpiresAt makes the announcement never expire.
	ClearExpiresAt bool `json:"clearExpiresAt"`
}

func parsePriority(p string) (model.AnnouncementPriority, error) {
	switch model.AnnouncementPriority(p) {
	case "":
		return model.PriorityNormal, nil
	case model.PriorityLow, model.PriorityNormal, model.PriorityHigh:
		return model.AnnouncementPriority(p), nil
	}
	return "", fmt.Errorf("%w: unknown priority %q", util.ErrValidation, p)
}

func (s *AnnouncementService) Create(ctx context.Context, authorID uint, req AnnouncementReq) (*model.Announcement, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", util.ErrValidation)
	}
	priority, err := parsePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	a := &model.Announcement{
		Title:       req.Title,
		Content:     req.Content,
		Course:      req.Course,
		Priority:    priority,
		AuthorID:    authorID,
		IsPublished: req.IsPublished,
		ExpiresAt:   req.ExpiresAt,
	}
	if a.IsPublished {
		now := s.now()
		a.PublishedAt = &now
	}

	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, err
	}
	logger.Log.Info("Announcement created", zap.String("id", a.ID), zap.Uint("authorId", authorID))
	return a, nil
}

// Update applies the present fields. Publishing stamps PublishedAt the
// first time; unpublishing clears it.
func (s *AnnouncementService) Update(ctx context.Context, id string, req AnnouncementUpdateReq) (*model.Announcement, error) {
	a, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: title must not be empty", util.ErrValidation)
		}
		a.Title = *req.Title
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, fmt.Errorf("%w: content must not be empty", util.ErrValidation)
		}
		a.Content = *req.Content
	}
	if req.Course != nil {
		a.Course = *req.Course
	}
	if req.Priority != nil {
		priority, err := parsePriority(*req.Priority)
		if err != nil {
			return nil, err
		}
		a.Priority = priority
	}
	switch {
	case req.ClearExpiresAt && req.ExpiresAt != nil:
		return nil, fmt.Errorf("%w: expiresAt and clearExpiresAt are exclusive", util.ErrValidation)
	case req.ClearExpiresAt:
		a.ExpiresAt = nil
	case req.ExpiresAt != nil:
		a.ExpiresAt = req.ExpiresAt
	}
	if req.IsPublished != nil {
		a.IsPublished = *req.IsPublished
		switch {
		case a.IsPublished && a.PublishedAt == nil:
			now := s.now()
			a.PublishedAt = &now
		case !a.IsPublished:
			a.PublishedAt = nil
		}
	}

	if err := s.Repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes the announcement and, best effort, its attachment.
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	a, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if a.AttachmentKey != "" && s.Storage != nil {
		if err := s.Storage.Delete(ctx, a.AttachmentKey); err != nil {
			logger.Log.Warn("Failed to delete announcement attachment",
				zap.String("id", id), zap.String("key", a.AttachmentKey), zap.Error(err))
		}
	}
	return nil
}

func (s *AnnouncementService) ListForAdmin(ctx context.Context, course string, page, limit int) ([]model.Announcement, int64, error) {
	return s.Repo.List(ctx, repository.AnnouncementFilter{Course: course, Page: page, Limit: limit})
}

// ListVisible returns published, unexpired announcements, newest first.
func (s *AnnouncementService) ListVisible(ctx context.Context, course string, page, limit int) ([]model.Announcement, int64, error) {
	now := s.now()
	return s.Repo.List(ctx, repository.AnnouncementFilter{
		Course:    course,
		VisibleAt: &now,
		Page:      page,
		Limit:     limit,
	})
}

// UploadAttachment stores file as the announcement's attachment, replacing
// any previous one.
func (s *AnnouncementService) UploadAttachment(ctx context.Context, id, filename string, file io.ReadSeeker, size int64) (*model.Announcement, error) {
	if s.Storage == nil {
		return nil, fmt.Errorf("attachment storage is not configured")
	}
	if size > util.MaxAttachmentSize {
		return nil, fmt.Errorf("%w: attachment exceeds %d bytes", util.ErrValidation, util.MaxAttachmentSize)
	}
	if !util.AllowedAttachmentExtension(filename) {
		return nil, fmt.Errorf("%w: file extension not allowed", util.ErrValidation)
	}

	a, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	mimeType, err := util.ValidateMimeType(file, util.AllowedAttachmentMimeTypes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrValidation, err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("announcements/%s/%s%s", a.ID, uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
	url, err := s.Storage.Upload(ctx, key, file, size, mimeType)
	if err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}

	previous := a.AttachmentKey
	a.AttachmentKey = key
	a.AttachmentURL = url
	if err := s.Repo.Update(ctx, a); err != nil {
		return nil, err
	}

	if previous != "" {
		if err := s.Storage.Delete(ctx, previous); err != nil {
			logger.Log.Warn("Failed to delete replaced attachment", zap.String("key", previous), zap.Error(err))
		}
	}
	return a, nil
}
