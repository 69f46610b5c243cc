package model

import "time"

type AnnouncementPriority string

const (
	PriorityLow    AnnouncementPriority = "low"
	PriorityNormal AnnouncementPriority = "normal"
	PriorityHigh   AnnouncementPriority = "high"
)

// swagger:model Announcement
type Announcement struct {
	UUIDBase
	Title         string               `gorm:"size:255;not null" json:"title"`
	Content       string               `gorm:"type:text;not null" json:"content"`
	Course        string               `gorm:"size:100;index" json:"course"`
	Priority      AnnouncementPriority `gorm:"size:10;default:'normal'" json:"priority"`
	AuthorID      uint                 `gorm:"index" json:"authorId"`
	IsPublished   bool                 `gorm:"default:false" json:"isPublished"`
	PublishedAt   *time.Time           `json:"publishedAt,omitempty"`
	ExpiresAt     *time.Time           `json:"expiresAt,omitempty"`
	AttachmentURL string               `gorm:"size:512" json:"attachmentUrl,omitempty"`
	AttachmentKey string               `gorm:"size:255" json:"-"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// VisibleAt reports whether students should see the announcement at now.
func (a *Announcement) VisibleAt(now time.Time) bool {
	if !a.IsPublished {
		return false
	}
	return a.ExpiresAt == nil || now.Before(*a.ExpiresAt)
}
