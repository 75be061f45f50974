package models

import (
	"strings"
	"unicode/utf8"

	"github.com/tidyhome-services/blog-backend/errs"
)

// Validation messages, kept verbatim from the admin panel's contract.
const (
	msgTitleRequired       = "Title is required"
	msgTitleTooLong        = "Title cannot exceed 255 characters"
	msgTitleNoSlug         = "Title must contain at least one alphanumeric character"
	msgContentRequired     = "Content is required"
	msgContentInvalid      = "Content must be valid Delta JSON format"
	msgDescriptionRequired = "Description is required"
	msgDescriptionTooLong  = "Description cannot exceed 500 characters"
	msgAuthorRequired      = "Author is required"
	msgInvalidTag          = "Invalid tag value"
	msgDurationTooShort    = "Estimated duration must be at least 1 minute"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 500
)

// BlogPostInput is the raw field set submitted by a client. Pointers
// distinguish "absent" from "present but empty", which matters for partial
// updates. The HTTP layer builds this from a multipart form or a JSON body;
// nothing downstream ever sees an unvalidated field bag.
type BlogPostInput struct {
	Title             *string `json:"title"`
	Content           *string `json:"content"`
	Description       *string `json:"description"`
	Author            *string `json:"author"`
	Tag               *string `json:"tag"`
	KeyTakeaways      *string `json:"keyTakeaways"`
	EstimatedDuration *int    `json:"estimatedDuration"`
	Image             *string `json:"-"`
}

// NormalizedPost is the validated, trimmed output of ValidateCreate or
// ValidateUpdate. Content stays in its serialized form; the store persists it
// as text. Nil pointers mean the field was not part of the request.
type NormalizedPost struct {
	Title             *string
	Content           *string
	Description       *string
	Author            *string
	Tag               *string
	KeyTakeaways      *string
	EstimatedDuration *int
	Image             *string
}

// ValidateCreate checks the mandatory field set for post creation. Every
// violation is collected; the caller gets them all at once.
func (in *BlogPostInput) ValidateCreate() (*NormalizedPost, []errs.FieldError) {
	var fieldErrs []errs.FieldError
	out := &NormalizedPost{}

	fieldErrs = append(fieldErrs, validateTitle(in.Title, true, out)...)
	fieldErrs = append(fieldErrs, validateContent(in.Content, true, out)...)
	fieldErrs = append(fieldErrs, validateDescription(in.Description, true, out)...)
	fieldErrs = append(fieldErrs, validateAuthor(in.Author, true, out)...)
	fieldErrs = append(fieldErrs, in.validateOptionals(out)...)

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	return out, nil
}

// ValidateUpdate checks a partial field set: every field is optional, but a
// present field obeys the same rules as on create.
func (in *BlogPostInput) ValidateUpdate() (*NormalizedPost, []errs.FieldError) {
	var fieldErrs []errs.FieldError
	out := &NormalizedPost{}

	fieldErrs = append(fieldErrs, validateTitle(in.Title, false, out)...)
	fieldErrs = append(fieldErrs, validateContent(in.Content, false, out)...)
	fieldErrs = append(fieldErrs, validateDescription(in.Description, false, out)...)
	fieldErrs = append(fieldErrs, validateAuthor(in.Author, false, out)...)
	fieldErrs = append(fieldErrs, in.validateOptionals(out)...)

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	return out, nil
}

func validateTitle(title *string, required bool, out *NormalizedPost) []errs.FieldError {
	if title == nil {
		if required {
			return []errs.FieldError{{Field: "title", Message: msgTitleRequired}}
		}
		return nil
	}

	trimmed := strings.TrimSpace(*title)
	if trimmed == "" {
		return []errs.FieldError{{Field: "title", Message: msgTitleRequired}}
	}
	if utf8.RuneCountInString(trimmed) > maxTitleLength {
		return []errs.FieldError{{Field: "title", Message: msgTitleTooLong}}
	}
	// A title of pure punctuation would slugify to the empty string; reject it
	// here instead of storing an empty slug.
	if Slugify(trimmed) == "" {
		return []errs.FieldError{{Field: "title", Message: msgTitleNoSlug}}
	}

	out.Title = &trimmed
	return nil
}

func validateContent(content *string, required bool, out *NormalizedPost) []errs.FieldError {
	if content == nil {
		if required {
			return []errs.FieldError{{Field: "content", Message: msgContentRequired}}
		}
		return nil
	}

	delta, err := ParseDelta(*content)
	if err != nil {
		return []errs.FieldError{{Field: "content", Message: msgContentInvalid}}
	}
	if delta.IsEmpty() {
		return []errs.FieldError{{Field: "content", Message: msgContentRequired}}
	}

	out.Content = content
	return nil
}

func validateDescription(description *string, required bool, out *NormalizedPost) []errs.FieldError {
	if description == nil {
		if required {
			return []errs.FieldError{{Field: "description", Message: msgDescriptionRequired}}
		}
		return nil
	}

	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return []errs.FieldError{{Field: "description", Message: msgDescriptionRequired}}
	}
	if utf8.RuneCountInString(trimmed) > maxDescriptionLength {
		return []errs.FieldError{{Field: "description", Message: msgDescriptionTooLong}}
	}

	out.Description = &trimmed
	return nil
}

func validateAuthor(author *string, required bool, out *NormalizedPost) []errs.FieldError {
	if author == nil {
		if required {
			return []errs.FieldError{{Field: "author", Message: msgAuthorRequired}}
		}
		return nil
	}

	trimmed := strings.TrimSpace(*author)
	if trimmed == "" {
		return []errs.FieldError{{Field: "author", Message: msgAuthorRequired}}
	}

	out.Author = &trimmed
	return nil
}

func (in *BlogPostInput) validateOptionals(out *NormalizedPost) []errs.FieldError {
	var fieldErrs []errs.FieldError

	if in.Tag != nil {
		if !IsValidTag(*in.Tag) {
			fieldErrs = append(fieldErrs, errs.FieldError{Field: "tag", Message: msgInvalidTag})
		} else {
			out.Tag = in.Tag
		}
	}

	if in.KeyTakeaways != nil {
		trimmed := strings.TrimSpace(*in.KeyTakeaways)
		out.KeyTakeaways = &trimmed
	}

	if in.EstimatedDuration != nil {
		if *in.EstimatedDuration < 1 {
			fieldErrs = append(fieldErrs, errs.FieldError{Field: "estimatedDuration", Message: msgDurationTooShort})
		} else {
			out.EstimatedDuration = in.EstimatedDuration
		}
	}

	// The image reference comes from the upload collaborator, which already
	// enforced type and size; it passes through untouched.
	out.Image = in.Image

	return fieldErrs
}
