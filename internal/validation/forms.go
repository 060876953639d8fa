// Package validation provides form input validation for the Blogly handlers.
package validation

import (
	"strconv"
	"strings"
)

const (
	maxNameLength    = 100
	maxTitleLength   = 200
	maxTagNameLength = 50
)

// FieldErrors maps form field names to user-facing validation messages.
type FieldErrors map[string]string

// Any reports whether any field failed validation.
func (e FieldErrors) Any() bool {
	return len(e) > 0
}

// UserForm holds submitted user fields.
type UserForm struct {
	FirstName string
	LastName  string
	ImageURL  string
}

// Validate checks required user fields.
func (f UserForm) Validate() FieldErrors {
	errs := FieldErrors{}
	requireText(errs, "first_name", "First name", f.FirstName, maxNameLength)
	requireText(errs, "last_name", "Last name", f.LastName, maxNameLength)
	return errs
}

// PostForm holds submitted post fields.
type PostForm struct {
	Title   string
	Content string
}

// Validate checks required post fields.
func (f PostForm) Validate() FieldErrors {
	errs := FieldErrors{}
	requireText(errs, "title", "Title", f.Title, maxTitleLength)
	requireText(errs, "content", "Content", f.Content, 0)
	return errs
}

// TagForm holds submitted tag fields.
type TagForm struct {
	Name    string
	PostIDs []uint
}

// Validate checks required tag fields. Name uniqueness is checked
// against the database by the handler.
func (f TagForm) Validate() FieldErrors {
	errs := FieldErrors{}
	requireText(errs, "name", "Name", f.Name, maxTagNameLength)
	return errs
}

// requireText records an error when value is blank or exceeds maxLen
// (0 means unbounded).
func requireText(errs FieldErrors, field, label, value string, maxLen int) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		errs[field] = label + " is required"
		return
	}
	if maxLen > 0 && len(trimmed) > maxLen {
		errs[field] = label + " must be at most " + strconv.Itoa(maxLen) + " characters"
	}
}
