package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func listNotificationsHandler(notify NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		unreadOnly := c.Query("unread") == "true"
		list, err := notify.List(c.Request.Context(), currentProfile(c).ID, unreadOnly)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"notifications": list})
	}
}

func markNotificationReadHandler(notify NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := notify.MarkRead(c.Request.Context(), currentProfile(c).ID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func markAllNotificationsReadHandler(notify NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := notify.MarkAllRead(c.Request.Context(), currentProfile(c).ID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
