package api

import (
	"time"

	"github.com/tidyhome-services/blog-backend/database"
	"github.com/tidyhome-services/blog-backend/services"
)

// initializeHandlers creates all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, images services.ImageStore, tokens TokenIssuer, startupTime time.Time, exposeErrors bool) *routeHandlers {
	return &routeHandlers{
		blogPostHandler: newBlogPostHandler(db.BlogPostRepo(), images, exposeErrors),
		authHandler:     newAuthHandler(db.UserRepo(), tokens, exposeErrors),
		statusHandler:   newStatusHandler(startupTime, exposeErrors),
	}
}
