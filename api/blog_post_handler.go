package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tidyhome-services/blog-backend/database"
	"github.com/tidyhome-services/blog-backend/errs"
	"github.com/tidyhome-services/blog-backend/models"
	"github.com/tidyhome-services/blog-backend/services"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing; larger
// file parts spill to disk.
const maxUploadMemory = 32 << 20

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
	images       services.ImageStore
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo, images services.ImageStore, exposeErrors bool) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger, exposeErrors),
		logger:       logger,
		blogPostRepo: blogPostRepo,
		images:       images,
	}
}

// getAllBlogPosts lists posts with optional tag filtering and pagination.
// Query params: tag, page (default 1), limit (default 10), sort (default
// -createdAt, newest first).
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		page := parsePositiveInt(q.Get("page"), 1)
		limit := parsePositiveInt(q.Get("limit"), database.DefaultPageLimit)
		sort := q.Get("sort")
		if sort == "" {
			sort = "-createdAt"
		}

		result, err := h.blogPostRepo.FindPage(r.Context(), database.PostFilter{Tag: q.Get("tag")}, page, limit, sort)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteList(w, result.Items, len(result.Items), result.Total, limit, page)
	}
}

// getBlogPostBySlug retrieves a single post by its slug.
func (h blogPostHandler) getBlogPostBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		post, err := h.blogPostRepo.FindBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, post)
	}
}

// getBlogPost retrieves a single post by id.
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, post)
	}
}

// previewBlogPost returns the post's Delta content rendered to sanitized HTML,
// so the admin panel can show an article preview without a client-side
// converter.
func (h blogPostHandler) previewBlogPost() http.HandlerFunc {
	type preview struct {
		HTML string `json:"html"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, preview{HTML: services.RenderDeltaHTML(post.Content)})
	}
}

// createBlogPost validates the submitted field set, uploads the image when
// present, and persists a new post. The slug is computed downstream from the
// title; client-supplied slugs are never read.
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, parseErrs, err := h.parseInput(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		fields, validationErrs := input.ValidateCreate()
		if all := append(parseErrs, validationErrs...); len(all) > 0 {
			h.responder.WriteError(w, errs.NewValidationError(all))
			return
		}

		if err := h.attachImage(r, fields); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.Create(r.Context(), fields)
		if err != nil {
			// If an image was uploaded it is now orphaned; log and move on, no
			// compensation step.
			if fields.Image != nil {
				h.logger.Warn().Str("image", *fields.Image).Msg("Post save failed after image upload")
			}
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusCreated, post)
	}
}

// updateBlogPost applies a partial update. Present fields obey create rules;
// omitted fields keep their stored values; the slug is re-derived only when
// the title changes.
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input, parseErrs, err := h.parseInput(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		fields, validationErrs := input.ValidateUpdate()
		if all := append(parseErrs, validationErrs...); len(all) > 0 {
			h.responder.WriteError(w, errs.NewValidationError(all))
			return
		}

		if err := h.attachImage(r, fields); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.Update(r.Context(), id, fields)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, post)
	}
}

// deleteBlogPost hard-deletes a post by id.
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parsePostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogPostRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteMessage(w, "Blog post deleted successfully")
	}
}

// parseInput builds a BlogPostInput from either a multipart form or a JSON
// body. Field-level parse problems (e.g. a non-integer duration) come back as
// FieldErrors so they can be reported together with validation failures.
func (h blogPostHandler) parseInput(r *http.Request) (*models.BlogPostInput, []errs.FieldError, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return nil, nil, errs.Malformed("multipart form")
		}
		return inputFromForm(r.MultipartForm.Value)
	}

	var input models.BlogPostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return nil, nil, errs.Malformed("request body")
	}
	return &input, nil, nil
}

func inputFromForm(values map[string][]string) (*models.BlogPostInput, []errs.FieldError, error) {
	input := &models.BlogPostInput{
		Title:        formString(values, "title"),
		Content:      formString(values, "content"),
		Description:  formString(values, "description"),
		Author:       formString(values, "author"),
		Tag:          formString(values, "tag"),
		KeyTakeaways: formString(values, "keyTakeaways"),
	}

	var fieldErrs []errs.FieldError
	if raw := formString(values, "estimatedDuration"); raw != nil {
		duration, err := strconv.Atoi(strings.TrimSpace(*raw))
		if err != nil {
			fieldErrs = append(fieldErrs, errs.FieldError{
				Field:   "estimatedDuration",
				Message: "Estimated duration must be at least 1 minute",
			})
		} else {
			input.EstimatedDuration = &duration
		}
	}

	return input, fieldErrs, nil
}

// formString returns the first value for key, or nil when the key was not part
// of the form at all. Present-but-empty is a real value: updates must be able
// to distinguish the two.
func formString(values map[string][]string, key string) *string {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return nil
	}
	return &v[0]
}

// attachImage uploads the multipart image part, if any, and attaches the
// resulting URL to the normalized fields. Type and size constraints live in
// the image store.
func (h blogPostHandler) attachImage(r *http.Request, fields *models.NormalizedPost) error {
	if r.MultipartForm == nil {
		return nil
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil
		}
		return errs.Malformed("image upload")
	}
	defer file.Close()

	url, err := h.images.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		return err
	}

	fields.Image = &url
	return nil
}

func parsePostID(r *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing blog post id")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid blog post id")
	}
	return id, nil
}

func parsePositiveInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
