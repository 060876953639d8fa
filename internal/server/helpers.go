package server

import (
	"strconv"

	"blogly/internal/models"

	"github.com/gofiber/fiber/v2"
)

// render renders a template inside the main layout, injecting any pending
// flash message.
func (s *Server) render(c *fiber.Ctx, status int, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	if _, ok := bind["Flash"]; !ok {
		bind["Flash"] = s.popFlash(c)
	}
	return c.Status(status).Render(name, bind)
}

// parseID extracts a route parameter as a positive uint. Malformed ids are
// treated like unknown records: the caller returns a 404.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, models.NewNotFoundError("Page", c.Params(param))
	}
	return uint(id), nil
}

// formIDs collects every submitted value for a repeated form field
// (e.g. the checked post checkboxes) as ids, skipping anything non-numeric.
func formIDs(c *fiber.Ctx, field string) []uint {
	values := c.Request().PostArgs().PeekMulti(field)
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseUint(string(v), 10, 32)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}
