package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed
// @Summary Get feed
// @Description Newest-first feed of posts visible to the viewer
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} service.PostPage
// @Failure 401 {object} object{error=string}
// @Router /feed [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	page, err := s.feedService.GetFeed(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetTrending handles GET /api/feed/trending
// @Summary Get trending posts
// @Description Most-liked visible posts from the last 24 hours
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} service.PostPage
// @Failure 401 {object} object{error=string}
// @Router /feed/trending [get]
func (s *Server) GetTrending(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	page, err := s.feedService.GetTrending(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}
