package server

import (
	"fmt"
	"strconv"
	"strings"

	"blogly/internal/models"
	"blogly/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// homepagePostLimit caps the number of posts shown on the homepage.
const homepagePostLimit = 5

func postFormFromRequest(c *fiber.Ctx) validation.PostForm {
	return validation.PostForm{
		Title:   strings.TrimSpace(c.FormValue("title")),
		Content: strings.TrimSpace(c.FormValue("content")),
	}
}

// Home renders the five most recent posts across all users, newest first.
func (s *Server) Home(c *fiber.Ctx) error {
	posts, err := s.postRepo.Recent(c.Context(), homepagePostLimit)
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, "home", fiber.Map{
		"Posts": posts,
	})
}

// NewPostForm renders the post-creation form for a user.
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return s.render(c, fiber.StatusOK, "posts/new", fiber.Map{
		"User":   user,
		"Form":   validation.PostForm{},
		"Errors": validation.FieldErrors{},
	})
}

// CreatePost creates a post under the given user and redirects to the
// user's detail page.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	form := postFormFromRequest(c)
	if errs := form.Validate(); errs.Any() {
		return s.render(c, fiber.StatusBadRequest, "posts/new", fiber.Map{
			"User":   user,
			"Form":   form,
			"Errors": errs,
		})
	}

	post := &models.Post{
		Title:   form.Title,
		Content: form.Content,
		UserID:  user.ID,
	}
	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return err
	}

	s.flash(c, fmt.Sprintf("Post '%s' added.", post.Title))
	return c.Redirect("/users/"+strconv.FormatUint(uint64(user.ID), 10), fiber.StatusSeeOther)
}

// ShowPost renders a post's detail page with its tags.
func (s *Server) ShowPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return s.render(c, fiber.StatusOK, "posts/show", fiber.Map{
		"Post": post,
	})
}

// EditPostForm renders the pre-populated post-edit form.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return s.render(c, fiber.StatusOK, "posts/edit", fiber.Map{
		"Post": post,
		"Form": validation.PostForm{
			Title:   post.Title,
			Content: post.Content,
		},
		"Errors": validation.FieldErrors{},
	})
}

// UpdatePost applies title/content edits and redirects to the post's
// detail page. The creation timestamp and owner are immutable.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	form := postFormFromRequest(c)
	if errs := form.Validate(); errs.Any() {
		return s.render(c, fiber.StatusBadRequest, "posts/edit", fiber.Map{
			"Post":   post,
			"Form":   form,
			"Errors": errs,
		})
	}

	post.Title = form.Title
	post.Content = form.Content
	if err := s.postRepo.Update(c.Context(), post); err != nil {
		return err
	}

	s.flash(c, fmt.Sprintf("Post '%s' edited.", post.Title))
	return c.Redirect("/posts/"+strconv.FormatUint(uint64(post.ID), 10), fiber.StatusSeeOther)
}

// DeletePost removes a post and redirects to the owning user's detail page.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if err := s.postRepo.Delete(c.Context(), post.ID); err != nil {
		return err
	}

	s.flash(c, fmt.Sprintf("Post '%s' deleted.", post.Title))
	return c.Redirect("/users/"+strconv.FormatUint(uint64(post.UserID), 10), fiber.StatusSeeOther)
}
