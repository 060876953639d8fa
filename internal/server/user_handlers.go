package server

import (
	"fmt"
	"strconv"
	"strings"

	"blogly/internal/models"
	"blogly/internal/validation"

	"github.com/gofiber/fiber/v2"
)

func userFormFromRequest(c *fiber.Ctx) validation.UserForm {
	return validation.UserForm{
		FirstName: strings.TrimSpace(c.FormValue("first_name")),
		LastName:  strings.TrimSpace(c.FormValue("last_name")),
		ImageURL:  strings.TrimSpace(c.FormValue("image_url")),
	}
}

// ListUsers renders all users.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	users, err := s.userRepo.List(c.Context())
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "users/index", fiber.Map{
		"Users": users,
	})
}

// NewUserForm renders the user-creation form.
func (s *Server) NewUserForm(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "users/new", fiber.Map{
		"Form":   validation.UserForm{},
		"Errors": validation.FieldErrors{},
	})
}

// CreateUser creates a user from the submitted form and redirects to the
// user list. A blank image URL falls back to the default placeholder.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	form := userFormFromRequest(c)
	if errs := form.Validate(); errs.Any() {
		return s.render(c, fiber.StatusBadRequest, "users/new", fiber.Map{
			"Form":   form,
			"Errors": errs,
		})
	}

	user := &models.User{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		ImageURL:  form.ImageURL,
	}
	if user.ImageURL == "" {
		user.ImageURL = models.DefaultProfileImage
	}

	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return err
	}

	s.flash(c, fmt.Sprintf("User '%s' added.", user.FullName()))
	return c.Redirect("/users", fiber.StatusSeeOther)
}

// ShowUser renders a user's detail page with their posts.
func (s *Server) ShowUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return s.render(c, fiber.StatusOK, "users/show", fiber.Map{
		"User": user,
	})
}

// EditUserForm renders the pre-populated user-edit form.
func (s *Server) EditUserForm(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return s.render(c, fiber.StatusOK, "users/edit", fiber.Map{
		"User": user,
		"Form": validation.UserForm{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			ImageURL:  user.ImageURL,
		},
		"Errors": validation.FieldErrors{},
	})
}

// UpdateUser applies edits to name and image fields and redirects to the
// user's detail page.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	form := userFormFromRequest(c)
	if errs := form.Validate(); errs.Any() {
		return s.render(c, fiber.StatusBadRequest, "users/edit", fiber.Map{
			"User":   user,
			"Form":   form,
			"Errors": errs,
		})
	}

	user.FirstName = form.FirstName
	user.LastName = form.LastName
	user.ImageURL = form.ImageURL
	if user.ImageURL == "" {
		user.ImageURL = models.DefaultProfileImage
	}

	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return err
	}

	s.flash(c, fmt.Sprintf("User '%s' updated.", user.FullName()))
	return c.Redirect("/users/"+strconv.FormatUint(uint64(user.ID), 10), fiber.StatusSeeOther)
}

// DeleteUser removes a user and all of their posts, then redirects to the
// user list.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(c.Context(), user.ID); err != nil {
		return err
	}

	s.flash(c, fmt.Sprintf("User '%s' deleted.", user.FullName()))
	return c.Redirect("/users", fiber.StatusSeeOther)
}
