package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserFormValidate(t *testing.T) {
	tests := []struct {
		name       string
		form       UserForm
		wantFields []string
	}{
		{"Valid", UserForm{FirstName: "John", LastName: "Doe"}, nil},
		{"Missing first name", UserForm{LastName: "Doe"}, []string{"first_name"}},
		{"Missing last name", UserForm{FirstName: "John"}, []string{"last_name"}},
		{"Whitespace only", UserForm{FirstName: "   ", LastName: "\t"}, []string{"first_name", "last_name"}},
		{"Too long", UserForm{FirstName: strings.Repeat("x", 101), LastName: "Doe"}, []string{"first_name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			assert.Len(t, errs, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestPostFormValidate(t *testing.T) {
	errs := PostForm{Title: "Hello", Content: "World"}.Validate()
	assert.False(t, errs.Any())

	errs = PostForm{}.Validate()
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "content")

	errs = PostForm{Title: strings.Repeat("t", 201), Content: "ok"}.Validate()
	assert.Contains(t, errs, "title")
}

func TestTagFormValidate(t *testing.T) {
	assert.False(t, TagForm{Name: "golang"}.Validate().Any())
	assert.Contains(t, TagForm{}.Validate(), "name")
	assert.Contains(t, TagForm{Name: strings.Repeat("a", 51)}.Validate(), "name")
}
