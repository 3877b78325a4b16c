package server

import (
	"strings"

	"zord/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SearchPosts handles GET /api/search/posts
// @Summary Search posts
// @Description Search captions; results obey the viewer's visibility
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} service.PostPage
// @Failure 400 {object} object{error=string}
// @Router /search/posts [get]
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}
	p := parsePagination(c, 20)

	page, err := s.searchService.SearchPosts(c.Context(), currentUserID(c), query, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// SearchUsers handles GET /api/search/users
// @Summary Search users
// @Description Search users by name or email prefix
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.User
// @Failure 400 {object} object{error=string}
// @Router /search/users [get]
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}
	p := parsePagination(c, 20)

	users, err := s.searchService.SearchUsers(c.Context(), currentUserID(c), query, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// SearchByHashtag handles GET /api/search/hashtags/:tag
// @Summary Search by hashtag
// @Description Posts carrying the tag, filtered by the viewer's visibility
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param tag path string true "Hashtag without the # prefix"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} service.PostPage
// @Router /search/hashtags/{tag} [get]
func (s *Server) SearchByHashtag(c *fiber.Ctx) error {
	tag := strings.TrimSpace(c.Params("tag"))
	if tag == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Hashtag is required"))
	}
	p := parsePagination(c, 20)

	page, err := s.searchService.SearchByHashtag(c.Context(), currentUserID(c), tag, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// TrendingHashtags handles GET /api/search/hashtags/trending
// @Summary Trending hashtags
// @Description Most-used tags among posts the viewer can see
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of tags"
// @Success 200 {array} repository.HashtagCount
// @Router /search/hashtags/trending [get]
func (s *Server) TrendingHashtags(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	tags, err := s.searchService.TrendingHashtags(c.Context(), currentUserID(c), limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(tags)
}
