package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag values form a closed set; anything else is rejected at validation time.
const (
	TagApplianceCare      = "appliance care"
	TagFlooringCare       = "flooring care"
	TagHomePainting       = "home painting"
	TagBathroomRemodeling = "bathroom remodeling"
	TagKitchenRemodeling  = "kitchen remodeling"
)

// ValidTags lists every accepted tag value.
var ValidTags = []string{
	TagApplianceCare,
	TagFlooringCare,
	TagHomePainting,
	TagBathroomRemodeling,
	TagKitchenRemodeling,
}

// IsValidTag reports whether value belongs to the closed tag set.
func IsValidTag(value string) bool {
	for _, t := range ValidTags {
		if t == value {
			return true
		}
	}
	return false
}

// BlogPost is the sole persistent content entity. Content holds the post body
// as a serialized Quill Delta JSON string; Slug is always derived from Title
// and never accepted from clients.
type BlogPost struct {
	ID                uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title             string    `json:"title" db:"title" gorm:"type:text;not null"`
	Slug              string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_blog_posts_slug"`
	Content           string    `json:"content" db:"content" gorm:"type:text;not null"`
	Description       string    `json:"description" db:"description" gorm:"type:text;not null"`
	Tag               string    `json:"tag,omitempty" db:"tag" gorm:"type:text;index:idx_blog_posts_tag"`
	Image             string    `json:"image,omitempty" db:"image" gorm:"type:text"`
	KeyTakeaways      string    `json:"keyTakeaways,omitempty" db:"key_takeaways" gorm:"type:text"`
	Author            string    `json:"author" db:"author" gorm:"type:text;not null"`
	EstimatedDuration *int      `json:"estimatedDuration,omitempty" db:"estimated_duration" gorm:"type:integer"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at" gorm:"autoCreateTime;index:idx_blog_posts_created_at,sort:desc"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at" gorm:"autoUpdateTime"`
}
