package services

import (
	"dropxhub/internal/models"
	"dropxhub/internal/providers"
	"dropxhub/internal/storage/interfaces"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Alerter shows a short-lived alert for a new notification.
type Alerter interface {
	Alert(n models.Notification)
}

type logAlerter struct {
	logger providers.Logger
}

func (a *logAlerter) Alert(n models.Notification) {
	if n.Type == models.SeverityError {
		a.logger.Warnf(providers.TypeApp, "Alert: %s: %s", n.Title, n.Message)
		return
	}
	a.logger.Infof(providers.TypeApp, "Alert: %s: %s", n.Title, n.Message)
}

func NewLogAlerter(logger providers.Logger) Alerter {
	return &logAlerter{logger: logger}
}

type NotificationServiceInterface interface {
	AddNotification(title, message string, severity models.Severity, link string) (models.Notification, error)
	MarkAsRead(id string) error
	MarkAllAsRead() error
	ClearNotification(id string) error
	ClearAllNotifications() error
	Notifications() []models.Notification
	UnreadCount() int
}

type NotificationService struct {
	mu            sync.RWMutex
	storage       interfaces.KeyValueStorage
	logger        providers.Logger
	alerter       Alerter
	now           Clock
	newID         func() string
	notifications []models.Notification
}

func NewNotificationService(storage interfaces.KeyValueStorage, logger providers.Logger, alerter Alerter) NotificationServiceInterface {
	ns := &NotificationService{
		storage: storage,
		logger:  logger,
		alerter: alerter,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	ns.restore()
	return ns
}

func (ns *NotificationService) restore() {
	var stored []models.Notification
	found, err := loadJSON(ns.storage, KeyNotifications, &stored)
	switch {
	case err != nil:
		ns.logger.Errorf(providers.TypeApp, "Unable to restore notifications, using defaults: %s", err)
		stored = ns.welcomeNotifications()
	case !found:
		stored = ns.welcomeNotifications()
		if err := saveJSON(ns.storage, KeyNotifications, stored); err != nil {
			ns.logger.Errorf(providers.TypeApp, "Unable to save default notifications: %s", err)
		}
	}
	if stored == nil {
		stored = []models.Notification{}
	}
	ns.notifications = stored
}

func (ns *NotificationService) welcomeNotifications() []models.Notification {
	now := ns.now()
	return []models.Notification{
		{
			ID:      "1",
			Title:   "Welcome to DropX Hub!",
			Message: "Discover amazing apps and games. Start exploring now!",
			Type:    models.SeverityInfo,
			Date:    isoTime(now.Add(-5 * time.Minute)),
		},
		{
			ID:      "2",
			Title:   "New App Available",
			Message: "Weather Forecast app has been updated to version 2.1.0",
			Type:    models.SeveritySuccess,
			Date:    isoTime(now.Add(-2 * time.Hour)),
			Link:    "/app/1",
		},
	}
}

func (ns *NotificationService) commit(next []models.Notification) error {
	if err := saveJSON(ns.storage, KeyNotifications, next); err != nil {
		return err
	}
	ns.notifications = next
	return nil
}

// AddNotification prepends an unread notification and raises an alert.
func (ns *NotificationService) AddNotification(title, message string, severity models.Severity, link string) (models.Notification, error) {
	if !severity.Valid() {
		return models.Notification{}, fmt.Errorf("%w: %q", ErrInvalidSeverity, severity)
	}

	n := models.Notification{
		ID:      ns.newID(),
		Title:   title,
		Message: message,
		Type:    severity,
		Read:    false,
		Date:    isoTime(ns.now()),
		Link:    link,
	}

	ns.mu.Lock()
	next := make([]models.Notification, 0, len(ns.notifications)+1)
	next = append(next, n)
	next = append(next, ns.notifications...)
	err := ns.commit(next)
	ns.mu.Unlock()
	if err != nil {
		return models.Notification{}, err
	}

	ns.alerter.Alert(n)
	return n, nil
}

func (ns *NotificationService) MarkAsRead(id string) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	i := slices.IndexFunc(ns.notifications, func(n models.Notification) bool { return n.ID == id })
	if i < 0 {
		return ErrNotificationNotFound
	}
	next := slices.Clone(ns.notifications)
	next[i].Read = true
	return ns.commit(next)
}

func (ns *NotificationService) MarkAllAsRead() error {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	next := slices.Clone(ns.notifications)
	for i := range next {
		next[i].Read = true
	}
	return ns.commit(next)
}

func (ns *NotificationService) ClearNotification(id string) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	i := slices.IndexFunc(ns.notifications, func(n models.Notification) bool { return n.ID == id })
	if i < 0 {
		return ErrNotificationNotFound
	}
	return ns.commit(slices.Delete(slices.Clone(ns.notifications), i, i+1))
}

func (ns *NotificationService) ClearAllNotifications() error {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.commit([]models.Notification{})
}

func (ns *NotificationService) Notifications() []models.Notification {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	return slices.Clone(ns.notifications)
}

func (ns *NotificationService) UnreadCount() int {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	count := 0
	for _, n := range ns.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}
