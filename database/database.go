package database

import (
	"gorm.io/gorm"

	"github.com/tidyhome-services/blog-backend/models"
)

type Database struct {
	blogPostRepo *BlogPostRepo
	userRepo     *UserRepo
}

// New initializes a Database struct with each repository sharing one GORM
// database instance.
func New(db *gorm.DB) Database {
	return Database{
		blogPostRepo: NewBlogPostRepo(db),
		userRepo:     NewUserRepo(db),
	}
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

// Migrate creates or updates the schema for every entity, including the
// unique index on blog_posts.slug that backs duplicate-slug detection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.BlogPost{}, &models.User{})
}
