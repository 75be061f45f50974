package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidyhome-services/blog-backend/errs"
)

const validContent = `{"ops":[{"insert":"Some helpful advice.\n"}]}`

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func validCreateInput() *BlogPostInput {
	return &BlogPostInput{
		Title:       strPtr("Kitchen Remodeling Tips"),
		Content:     strPtr(validContent),
		Description: strPtr("A few tips for the kitchen."),
		Author:      strPtr("Jane"),
	}
}

func fieldNames(fieldErrs []errs.FieldError) []string {
	names := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		names = append(names, fe.Field)
	}
	return names
}

func TestValidateCreateSuccess(t *testing.T) {
	input := validCreateInput()
	input.Tag = strPtr(TagKitchenRemodeling)
	input.KeyTakeaways = strPtr("  measure twice  ")
	input.EstimatedDuration = intPtr(5)

	fields, fieldErrs := input.ValidateCreate()
	require.Empty(t, fieldErrs)
	require.NotNil(t, fields)

	assert.Equal(t, "Kitchen Remodeling Tips", *fields.Title)
	assert.Equal(t, validContent, *fields.Content)
	assert.Equal(t, "measure twice", *fields.KeyTakeaways)
	assert.Equal(t, TagKitchenRemodeling, *fields.Tag)
	assert.Equal(t, 5, *fields.EstimatedDuration)
}

func TestValidateCreateMissingMandatoryFields(t *testing.T) {
	input := &BlogPostInput{}

	fields, fieldErrs := input.ValidateCreate()
	assert.Nil(t, fields)
	assert.ElementsMatch(t,
		[]string{"title", "content", "description", "author"},
		fieldNames(fieldErrs),
	)
}

func TestValidateCreateCollectsAllViolations(t *testing.T) {
	input := &BlogPostInput{
		Title:             strPtr("   "),
		Content:           strPtr("not delta json"),
		Description:       strPtr(strings.Repeat("d", 501)),
		Author:            strPtr(""),
		Tag:               strPtr("gardening"),
		EstimatedDuration: intPtr(0),
	}

	fields, fieldErrs := input.ValidateCreate()
	assert.Nil(t, fields)
	assert.ElementsMatch(t,
		[]string{"title", "content", "description", "author", "tag", "estimatedDuration"},
		fieldNames(fieldErrs),
	)
}

func TestValidateCreateFieldRules(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*BlogPostInput)
		wantField   string
		wantMessage string
	}{
		{
			name:        "Empty title",
			mutate:      func(in *BlogPostInput) { in.Title = strPtr("") },
			wantField:   "title",
			wantMessage: "Title is required",
		},
		{
			name:        "Title too long",
			mutate:      func(in *BlogPostInput) { in.Title = strPtr(strings.Repeat("t", 256)) },
			wantField:   "title",
			wantMessage: "Title cannot exceed 255 characters",
		},
		{
			name:        "Title of pure punctuation has no slug",
			mutate:      func(in *BlogPostInput) { in.Title = strPtr(`!!! ... :::`) },
			wantField:   "title",
			wantMessage: "Title must contain at least one alphanumeric character",
		},
		{
			name:        "Content not parseable",
			mutate:      func(in *BlogPostInput) { in.Content = strPtr("{broken") },
			wantField:   "content",
			wantMessage: "Content must be valid Delta JSON format",
		},
		{
			name:        "Content without ops array",
			mutate:      func(in *BlogPostInput) { in.Content = strPtr(`{"text":"hi"}`) },
			wantField:   "content",
			wantMessage: "Content must be valid Delta JSON format",
		},
		{
			name:        "Content with null ops",
			mutate:      func(in *BlogPostInput) { in.Content = strPtr(`{"ops":null}`) },
			wantField:   "content",
			wantMessage: "Content must be valid Delta JSON format",
		},
		{
			name:        "Content with only a trailing newline",
			mutate:      func(in *BlogPostInput) { in.Content = strPtr(`{"ops":[{"insert":"\n"}]}`) },
			wantField:   "content",
			wantMessage: "Content is required",
		},
		{
			name:        "Description too long",
			mutate:      func(in *BlogPostInput) { in.Description = strPtr(strings.Repeat("d", 501)) },
			wantField:   "description",
			wantMessage: "Description cannot exceed 500 characters",
		},
		{
			name:        "Unknown tag",
			mutate:      func(in *BlogPostInput) { in.Tag = strPtr("roofing") },
			wantField:   "tag",
			wantMessage: "Invalid tag value",
		},
		{
			name:        "Zero duration",
			mutate:      func(in *BlogPostInput) { in.EstimatedDuration = intPtr(0) },
			wantField:   "estimatedDuration",
			wantMessage: "Estimated duration must be at least 1 minute",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput()
			tt.mutate(input)

			fields, fieldErrs := input.ValidateCreate()
			assert.Nil(t, fields)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field)
			assert.Equal(t, tt.wantMessage, fieldErrs[0].Message)
		})
	}
}

func TestValidateCountsCharactersNotBytes(t *testing.T) {
	input := validCreateInput()
	input.Title = strPtr(strings.Repeat("é", 255))
	input.Description = strPtr(strings.Repeat("ü", 500))

	fields, fieldErrs := input.ValidateCreate()
	require.Empty(t, fieldErrs)
	assert.Equal(t, strings.Repeat("é", 255), *fields.Title)

	input = validCreateInput()
	input.Title = strPtr(strings.Repeat("é", 256))

	_, fieldErrs = input.ValidateCreate()
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "Title cannot exceed 255 characters", fieldErrs[0].Message)
}

func TestValidateUpdateAllFieldsOptional(t *testing.T) {
	input := &BlogPostInput{}

	fields, fieldErrs := input.ValidateUpdate()
	require.Empty(t, fieldErrs)
	require.NotNil(t, fields)

	assert.Nil(t, fields.Title)
	assert.Nil(t, fields.Content)
	assert.Nil(t, fields.Description)
	assert.Nil(t, fields.Author)
}

func TestValidateUpdatePresentFieldsObeyCreateRules(t *testing.T) {
	input := &BlogPostInput{
		Title:   strPtr(""),
		Content: strPtr(`{"ops":[]}`),
	}

	fields, fieldErrs := input.ValidateUpdate()
	assert.Nil(t, fields)
	assert.ElementsMatch(t, []string{"title", "content"}, fieldNames(fieldErrs))
}

func TestValidateUpdateSingleField(t *testing.T) {
	input := &BlogPostInput{EstimatedDuration: intPtr(5)}

	fields, fieldErrs := input.ValidateUpdate()
	require.Empty(t, fieldErrs)
	require.NotNil(t, fields)

	assert.Equal(t, 5, *fields.EstimatedDuration)
	assert.Nil(t, fields.Title)
}

func TestValidateTrimsStrings(t *testing.T) {
	input := validCreateInput()
	input.Title = strPtr("  Flooring Care 101  ")
	input.Description = strPtr("\tkeep it shiny\n")
	input.Author = strPtr(" Jane ")

	fields, fieldErrs := input.ValidateCreate()
	require.Empty(t, fieldErrs)

	assert.Equal(t, "Flooring Care 101", *fields.Title)
	assert.Equal(t, "keep it shiny", *fields.Description)
	assert.Equal(t, "Jane", *fields.Author)
}
