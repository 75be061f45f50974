package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tidyhome-services/blog-backend/errs"
	"github.com/tidyhome-services/blog-backend/models"
)

// DefaultPageLimit applies when a list request does not specify a limit.
const DefaultPageLimit = 10

// PostFilter narrows a paginated listing. An empty Tag matches everything.
type PostFilter struct {
	Tag string
}

// PostPage is one page of a filtered listing together with the total match
// count across all pages.
type PostPage struct {
	Items []models.BlogPost
	Total int64
}

// sortColumns maps the API's sort keys to ORDER BY clauses. Unknown keys fall
// back to newest-first.
var sortColumns = map[string]string{
	"-createdAt": "created_at DESC",
	"createdAt":  "created_at ASC",
	"-title":     "title DESC",
	"title":      "title ASC",
}

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// Create persists a new post from validated fields. The slug is computed here
// from the title; a collision with an existing slug surfaces as a
// duplicate-slug error, enforced by the store's unique index so concurrent
// creates cannot both win.
func (r *BlogPostRepo) Create(ctx context.Context, fields *models.NormalizedPost) (*models.BlogPost, error) {
	post := models.BlogPost{
		ID:          uuid.New(),
		Title:       *fields.Title,
		Slug:        models.Slugify(*fields.Title),
		Content:     *fields.Content,
		Description: *fields.Description,
		Author:      *fields.Author,
	}
	if fields.Tag != nil {
		post.Tag = *fields.Tag
	}
	if fields.KeyTakeaways != nil {
		post.KeyTakeaways = *fields.KeyTakeaways
	}
	if fields.EstimatedDuration != nil {
		post.EstimatedDuration = fields.EstimatedDuration
	}
	if fields.Image != nil {
		post.Image = *fields.Image
	}

	if err := r.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, errs.NewDatabaseError("create", "blog post", err)
	}
	return &post, nil
}

// FindByID returns the post with the given id, or a 404 error.
func (r *BlogPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("blog post")
		}
		return nil, errs.NewDatabaseError("find", "blog post", err)
	}
	return &post, nil
}

// FindBySlug returns the post with the given slug, or a 404 error.
func (r *BlogPostRepo) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.WithContext(ctx).First(&post, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("blog post")
		}
		return nil, errs.NewDatabaseError("find", "blog post", err)
	}
	return &post, nil
}

// FindPage returns one page of posts matching the filter plus the total match
// count. A page past the end of the result set yields empty items with the
// correct total, not an error.
func (r *BlogPostRepo) FindPage(ctx context.Context, filter PostFilter, page, limit int, sort string) (*PostPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	order, ok := sortColumns[sort]
	if !ok {
		order = sortColumns["-createdAt"]
	}

	query := r.db.WithContext(ctx).Model(&models.BlogPost{})
	if filter.Tag != "" {
		query = query.Where("tag = ?", filter.Tag)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errs.NewDatabaseError("count", "blog posts", err)
	}

	var posts []models.BlogPost
	err := query.
		Order(order).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&posts).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "blog posts", err)
	}

	return &PostPage{Items: posts, Total: total}, nil
}

// Update applies a partial field set to an existing post. Fields absent from
// the set are left unchanged; the slug is re-derived only when the title is
// part of the update. UpdatedAt is bumped by gorm on every write.
func (r *BlogPostRepo) Update(ctx context.Context, id uuid.UUID, fields *models.NormalizedPost) (*models.BlogPost, error) {
	post, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if fields.Title != nil {
		updates["title"] = *fields.Title
		updates["slug"] = models.Slugify(*fields.Title)
	}
	if fields.Content != nil {
		updates["content"] = *fields.Content
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Author != nil {
		updates["author"] = *fields.Author
	}
	if fields.Tag != nil {
		updates["tag"] = *fields.Tag
	}
	if fields.KeyTakeaways != nil {
		updates["key_takeaways"] = *fields.KeyTakeaways
	}
	if fields.EstimatedDuration != nil {
		updates["estimated_duration"] = *fields.EstimatedDuration
	}
	if fields.Image != nil {
		updates["image"] = *fields.Image
	}

	if len(updates) > 0 {
		err = r.db.WithContext(ctx).Model(post).Updates(updates).Error
		if err != nil {
			return nil, errs.NewDatabaseError("update", "blog post", err)
		}
	}

	return r.FindByID(ctx, id)
}

// Delete hard-deletes the post with the given id; there is no tombstone.
func (r *BlogPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BlogPost{}, "id = ?", id)
	if result.Error != nil {
		return errs.NewDatabaseError("delete", "blog post", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFoundError("blog post")
	}
	return nil
}
