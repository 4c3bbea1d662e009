package server

import (
	"net/http"
	"strings"

	notificationdomain "github.com/bigdino44/DemoManagerPro/internal/notification/domain"
	"github.com/bigdino44/DemoManagerPro/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type createNotificationRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// @Summary      Create Notification
// @Tags         notification
// @Accept       json
// @Produce      json
// @Param        request body createNotificationRequest true "Create Notification Request"
// @Success      200  {object}  notificationdomain.Notification
// @Router       /notifications [post]
func (s *Server) CreateNotification(c *gin.Context) {
	var req createNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.notificationSvc.Add(c.Request.Context(), notificationdomain.AddNotificationRequest{
		Title:   req.Title,
		Message: req.Message,
		Type:    notificationdomain.Kind(strings.ToLower(strings.TrimSpace(req.Type))),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Notifications
// @Description  Newest first, with the current unread count
// @Tags         notification
// @Produce      json
// @Param        page_token  query  string  false  "Page cursor"
// @Param        page_size   query  int     false  "Page size"
// @Success      200  {object}  []notificationdomain.Notification
// @Router       /notifications [get]
func (s *Server) ListNotifications(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, info, err := s.notificationSvc.List(c.Request.Context(), page)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":            resp,
		"unread_count":    s.notificationSvc.UnreadCount(),
		"next_page_token": info.NextPageToken,
	})
}

// @Summary      Mark Notification Read
// @Tags         notification
// @Produce      json
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  map[string]bool
// @Router       /notifications/{id}/read [post]
func (s *Server) MarkNotificationRead(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	updated, err := s.notificationSvc.MarkAsRead(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// @Summary      Mark All Notifications Read
// @Tags         notification
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /notifications/read-all [post]
func (s *Server) MarkAllNotificationsRead(c *gin.Context) {
	updated, err := s.notificationSvc.MarkAllAsRead(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
