package controllers

import (
	"dropxhub/internal/models"
	"dropxhub/internal/providers"
	"dropxhub/internal/services"
	"net/http"
)

type NotificationController struct {
	logger        providers.Logger
	notifications services.NotificationServiceInterface
}

func NewNotificationController(logger providers.Logger, notifications services.NotificationServiceInterface) *NotificationController {
	return &NotificationController{logger: logger, notifications: notifications}
}

type notificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}

func (nc *NotificationController) respondList(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, notificationsResponse{
		Notifications: nc.notifications.Notifications(),
		UnreadCount:   nc.notifications.UnreadCount(),
	})
}

func (nc *NotificationController) List(w http.ResponseWriter, r *http.Request) {
	nc.respondList(w)
}

func (nc *NotificationController) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := nc.notifications.MarkAsRead(id); err != nil {
		writeError(w, r, nc.logger, err)
		return
	}
	nc.respondList(w)
}

func (nc *NotificationController) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	if err := nc.notifications.MarkAllAsRead(); err != nil {
		writeError(w, r, nc.logger, err)
		return
	}
	nc.respondList(w)
}

func (nc *NotificationController) Clear(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	if err := nc.notifications.ClearNotification(id); err != nil {
		writeError(w, r, nc.logger, err)
		return
	}
	nc.respondList(w)
}

func (nc *NotificationController) ClearAll(w http.ResponseWriter, r *http.Request) {
	if err := nc.notifications.ClearAllNotifications(); err != nil {
		writeError(w, r, nc.logger, err)
		return
	}
	nc.respondList(w)
}

type notificationRequest struct {
	Title   string          `json:"title"`
	Message string          `json:"message"`
	Type    models.Severity `json:"type"`
	Link    string          `json:"link"`
}

func (nc *NotificationController) Add(w http.ResponseWriter, r *http.Request) {
	var req notificationRequest
	if !decodeBody(w, r, maxRequestBodySize, &req) {
		return
	}
	if req.Type == "" {
		req.Type = models.SeverityInfo
	}
	n, err := nc.notifications.AddNotification(req.Title, req.Message, req.Type, req.Link)
	if err != nil {
		writeError(w, r, nc.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}
