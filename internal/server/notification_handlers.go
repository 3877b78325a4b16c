package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications
// @Summary List notifications
// @Description Newest-first notifications for the authenticated user
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param unread query bool false "Only unseen notifications"
// @Success 200 {object} service.NotificationPage
// @Router /notifications [get]
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	unreadOnly := c.QueryBool("unread", false)

	page, err := s.notificationService.ListNotifications(c.Context(), currentUserID(c), unreadOnly, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetUnseenCount handles GET /api/notifications/unseen-count
// @Summary Count unseen notifications
// @Description Number of unseen notifications for the authenticated user
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{count=int}
// @Router /notifications/unseen-count [get]
func (s *Server) GetUnseenCount(c *fiber.Ctx) error {
	count, err := s.notificationService.CountUnseen(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"count": count,
	})
}

// MarkNotificationSeen handles POST /api/notifications/:id/seen
// @Summary Mark notification seen
// @Description Mark one notification seen; repeat calls are no-ops
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} models.Notification
// @Failure 404 {object} object{error=string}
// @Router /notifications/{id}/seen [post]
func (s *Server) MarkNotificationSeen(c *fiber.Ctx) error {
	notifID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	notif, err := s.notificationService.MarkSeen(c.Context(), notifID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(notif)
}

// MarkAllNotificationsSeen handles POST /api/notifications/seen
// @Summary Mark all notifications seen
// @Description Mark every unseen notification of the authenticated user seen
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Router /notifications/seen [post]
func (s *Server) MarkAllNotificationsSeen(c *fiber.Ctx) error {
	if err := s.notificationService.MarkAllSeen(c.Context(), currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "All notifications marked seen",
	})
}

// DeleteNotification handles DELETE /api/notifications/:id
// @Summary Delete notification
// @Description Delete one of the authenticated user's notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /notifications/{id} [delete]
func (s *Server) DeleteNotification(c *fiber.Ctx) error {
	notifID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notificationService.DeleteNotification(c.Context(), notifID, currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Notification deleted",
	})
}
