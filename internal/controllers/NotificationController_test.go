package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications_List(t *testing.T) {
	env := newTestEnv(t)
	rr := do(env.notificationCtl.List, http.MethodGet, "/notifications", "")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[notificationsResponse](t, rr)
	assert.Len(t, resp.Notifications, 2)
	assert.Equal(t, 2, resp.UnreadCount)
}

func TestNotifications_Mutations(t *testing.T) {
	env := newTestEnv(t)

	rr := do(env.notificationCtl.MarkAsRead, http.MethodPost, "/notifications/read?id=1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decode[notificationsResponse](t, rr).UnreadCount)

	rr = do(env.notificationCtl.MarkAsRead, http.MethodPost, "/notifications/read?id=zzz", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(env.notificationCtl.MarkAllAsRead, http.MethodPost, "/notifications/read-all", "")
	assert.Equal(t, 0, decode[notificationsResponse](t, rr).UnreadCount)

	rr = do(env.notificationCtl.Clear, http.MethodPost, "/notifications/clear?id=2", "")
	assert.Len(t, decode[notificationsResponse](t, rr).Notifications, 1)

	rr = do(env.notificationCtl.ClearAll, http.MethodPost, "/notifications/clear-all", "")
	resp := decode[notificationsResponse](t, rr)
	assert.Empty(t, resp.Notifications)
	assert.NotNil(t, resp.Notifications)
}

func TestNotifications_Add(t *testing.T) {
	env := newTestEnv(t)
	rr := do(env.notificationCtl.Add, http.MethodPost, "/notifications/add", `{"title":"Games Category","message":"Browsing Games apps"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Games Category", env.notifications.Notifications()[0].Title)
	assert.Equal(t, 3, env.notifications.UnreadCount())

	rr = do(env.notificationCtl.Add, http.MethodPost, "/notifications/add", `{"title":"t","type":"loud"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
