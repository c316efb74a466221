package models

import (
	"time"

	"gorm.io/gorm"
)

type ArticleStatus string

const (
	ArticleDraft         ArticleStatus = "DRAFT"
	ArticlePendingReview ArticleStatus = "PENDING_REVIEW"
	ArticlePublished     ArticleStatus = "PUBLISHED"
	ArticleArchived      ArticleStatus = "ARCHIVED"
)

type Article struct {
	gorm.Model
	Title          string        `json:"title"`
	Slug           string        `json:"slug" gorm:"uniqueIndex"`
	Excerpt        string        `json:"excerpt"`
	Content        string        `json:"content"`
	CoverURL       string        `json:"cover_url"`
	AuthorID       uint          `json:"author_id"`
	Author         User          `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	PractitionerID *uint         `json:"practitioner_id"`
	Practitioner   *Practitioner `json:"practitioner,omitempty" gorm:"foreignKey:PractitionerID"`
	Status         ArticleStatus `json:"status" gorm:"default:DRAFT"`
	PublishedAt    *time.Time    `json:"published_at"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = ArticleDraft
	}
	return nil
}

// ApplyStatus applies a requested status change under publish gating: only
// admins may publish, everyone else lands in the moderation queue instead.
// PublishedAt is stamped the first time the article becomes PUBLISHED and
// never rewritten.
func (a *Article) ApplyStatus(requested ArticleStatus, isAdmin bool) {
	if requested == "" {
		return
	}
	if requested == ArticlePublished && !isAdmin {
		a.Status = ArticlePendingReview
		return
	}
	a.Status = requested
	if a.Status == ArticlePublished && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}
}
