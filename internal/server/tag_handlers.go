package server

import (
	"fmt"
	"strings"

	"blogly/internal/models"
	"blogly/internal/validation"

	"github.com/gofiber/fiber/v2"
)

func tagFormFromRequest(c *fiber.Ctx) validation.TagForm {
	return validation.TagForm{
		Name:    strings.TrimSpace(c.FormValue("name")),
		PostIDs: formIDs(c, "posts"),
	}
}

// checkedSet maps post ids to whether their checkbox is ticked.
func checkedSet(ids []uint) map[uint]bool {
	checked := make(map[uint]bool, len(ids))
	for _, id := range ids {
		checked[id] = true
	}
	return checked
}

// ListTags renders all tags.
func (s *Server) ListTags(c *fiber.Ctx) error {
	tags, err := s.tagRepo.List(c.Context())
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "tags/index", fiber.Map{
		"Tags": tags,
	})
}

// NewTagForm renders the tag-creation form with selectable posts.
func (s *Server) NewTagForm(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.Context())
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "tags/new", fiber.Map{
		"Posts":   posts,
		"Form":    validation.TagForm{},
		"Errors":  validation.FieldErrors{},
		"Checked": map[uint]bool{},
	})
}

// CreateTag creates a tag with the selected post associations and
// redirects to the tag list. Duplicate names are rejected up front.
func (s *Server) CreateTag(c *fiber.Ctx) error {
	form := tagFormFromRequest(c)
	errs := form.Validate()
	if !errs.Any() {
		existing, err := s.tagRepo.GetByName(c.Context(), form.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			errs["name"] = fmt.Sprintf("Tag name '%s' is already in use", form.Name)
		}
	}
	if errs.Any() {
		posts, err := s.postRepo.List(c.Context())
		if err != nil {
			return err
		}
		return s.render(c, fiber.StatusBadRequest, "tags/new", fiber.Map{
			"Posts":   posts,
			"Form":    form,
			"Errors":  errs,
			"Checked": checkedSet(form.PostIDs),
		})
	}

	posts, err := s.postRepo.ListByIDs(c.Context(), form.PostIDs)
	if err != nil {
		return err
	}

	tag := &models.Tag{Name: form.Name}
	if err := s.tagRepo.Create(c.Context(), tag, posts); err != nil {
		return err
	}

	s.flash(c, fmt.Sprintf("Tag '%s' added.", tag.Name))
	return c.Redirect("/tags", fiber.StatusSeeOther)
}

// ShowTag renders a tag's detail page with its posts.
func (s *Server) ShowTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return err
	}

	tag, err := s.tagRepo.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return s.render(c, fiber.StatusOK, "tags/show", fiber.Map{
		"Tag": tag,
	})
}

// EditTagForm renders the tag-edit form with the tag's current post set
// checked.
func (s *Server) EditTagForm(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return err
	}

	tag, err := s.tagRepo.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	posts, err := s.postRepo.List(c.Context())
	if err != nil {
		return err
	}

	current := make([]uint, 0, len(tag.Posts))
	for _, post := range tag.Posts {
		current = append(current, post.ID)
	}

	return s.render(c, fiber.StatusOK, "tags/edit", fiber.Map{
		"Tag":     tag,
		"Posts":   posts,
		"Form":    validation.TagForm{Name: tag.Name},
		"Errors":  validation.FieldErrors{},
		"Checked": checkedSet(current),
	})
}

// UpdateTag renames the tag and replaces its post associations with
// exactly the submitted set, then redirects to the tag list.
func (s *Server) UpdateTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return err
	}

	tag, err := s.tagRepo.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	form := tagFormFromRequest(c)
	errs := form.Validate()
	if !errs.Any() {
		existing, err := s.tagRepo.GetByName(c.Context(), form.Name)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != tag.ID {
			errs["name"] = fmt.Sprintf("Tag name '%s' is already in use", form.Name)
		}
	}
	if errs.Any() {
		posts, err := s.postRepo.List(c.Context())
		if err != nil {
			return err
		}
		return s.render(c, fiber.StatusBadRequest, "tags/edit", fiber.Map{
			"Tag":     tag,
			"Posts":   posts,
			"Form":    form,
			"Errors":  errs,
			"Checked": checkedSet(form.PostIDs),
		})
	}

	posts, err := s.postRepo.ListByIDs(c.Context(), form.PostIDs)
	if err != nil {
		return err
	}

	tag.Name = form.Name
	if err := s.tagRepo.Update(c.Context(), tag, posts); err != nil {
		return err
	}

	s.flash(c, fmt.Sprintf("Tag '%s' updated.", tag.Name))
	return c.Redirect("/tags", fiber.StatusSeeOther)
}

// DeleteTag removes a tag, leaving its posts in place, and redirects to
// the tag list.
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return err
	}

	tag, err := s.tagRepo.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if err := s.tagRepo.Delete(c.Context(), tag.ID); err != nil {
		return err
	}

	s.flash(c, fmt.Sprintf("Tag '%s' deleted.", tag.Name))
	return c.Redirect("/tags", fiber.StatusSeeOther)
}
