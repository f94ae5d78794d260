package notification

import (
	"errors"
	"strconv"

	"github.com/campushire/placement-api/model"
	"github.com/campushire/placement-api/services"
	"github.com/campushire/placement-api/utils/middleware"
	"github.com/campushire/placement-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NotificationHandler handles in-app notification requests
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /api/v1/notifications
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	opts := services.ListNotificationsOptions{
		UserID:     userID,
		UnreadOnly: c.Query("unread") == "true",
		Category:   c.Query("category"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	notifications, total, err := h.notifications.GetNotificationsByUser(c.Context(), opts)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch notifications")
	}

	views := make([]model.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		views = append(views, notifications[i].ToResponse())
	}

	return response.Paginated(c, views, response.CalculatePagination(page, limit, total))
}

// UnreadCount handles GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	count, err := h.notifications.GetUnreadCount(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch unread count")
	}

	return response.Success(c, fiber.Map{"unread_count": count})
}

// MarkRead handles PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	notificationID, err := strconv.Atoi(c.Params("id"))
	if err != nil || notificationID < 1 {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notifications.MarkAsRead(c.Context(), userID, uint(notificationID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Notification not found")
		}
		return response.InternalServerError(c, "Failed to mark notification as read")
	}

	return response.SuccessWithMessage(c, "Notification marked as read", nil)
}

// MarkAllRead handles PUT /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	if err := h.notifications.MarkAllAsRead(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to mark notifications as read")
	}

	return response.SuccessWithMessage(c, "All notifications marked as read", nil)
}
