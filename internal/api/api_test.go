package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/clock"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

type fakeCalendars struct {
	created *model.CalendarInfo
	updated *model.CalendarInfo
	deleted []int64
}

// calendar 1 belongs to the test user, calendar 2 to someone else
func (f *fakeCalendars) owned(calendarID, ownerID int64) error {
	switch {
	case calendarID == 2 && ownerID != 2:
		return model.ErrForbidden
	case calendarID != 1 && calendarID != 2:
		return model.ErrNoRecord
	}
	return nil
}

func (f *fakeCalendars) CreateCalendar(_ context.Context, ownerID int64, info *model.CalendarInfo) (*model.Calendar, error) {
	f.created = info
	return &model.Calendar{ID: 5, Name: info.Name, Description: info.Description, OwnerID: ownerID, CreatedAt: testNow}, nil
}

func (f *fakeCalendars) GetOwnerCalendars(_ context.Context, ownerID int64) ([]*model.Calendar, error) {
	return []*model.Calendar{{ID: 1, Name: "Work", OwnerID: ownerID}}, nil
}

func (f *fakeCalendars) UpdateCalendar(_ context.Context, calendarID, ownerID int64, info *model.CalendarInfo) (*model.Calendar, error) {
	if err := f.owned(calendarID, ownerID); err != nil {
		return nil, err
	}
	f.updated = info
	return &model.Calendar{ID: calendarID, Name: info.Name, Description: info.Description, OwnerID: ownerID}, nil
}

func (f *fakeCalendars) DeleteCalendar(_ context.Context, calendarID, ownerID int64) error {
	if err := f.owned(calendarID, ownerID); err != nil {
		return err
	}
	f.deleted = append(f.deleted, calendarID)
	return nil
}

type fakeEvents struct {
	created *model.EventCreate
	ownerID int64
	calls   []string
	err     error
}

func (f *fakeEvents) CreateEvent(_ context.Context, ownerID int64, info *model.EventCreate) (*model.Event, error) {
	f.created, f.ownerID = info, ownerID
	if f.err != nil {
		return nil, f.err
	}

	event := &model.Event{
		ID:         1,
		CalendarID: info.CalendarID,
		Title:      info.Title,
		StartTime:  info.StartTime,
		EndTime:    info.EndTime,
		Priority:   model.PriorityMedium,
		CreatedAt:  testNow,
	}
	if r := info.Recurrence; r.Enabled() {
		event.Recurrence = &model.EventRecurrence{ID: 1, EventID: 1, FromDate: r.FromDate, UntilDate: r.UntilDate, Type: r.Type}
	}
	if r := info.Reminder; r.Enabled() {
		event.Reminder = &model.Reminder{ID: 1, EventID: 1, RemindAt: *r.RemindAt, Channel: r.Channel}
	}
	return event, nil
}

func (f *fakeEvents) GetEvent(_ context.Context, eventID, _ int64) (*model.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Event{ID: eventID, CalendarID: 1, Title: "t", StartTime: testNow, Priority: model.PriorityLow}, nil
}

func (f *fakeEvents) GetCalendarEvents(_ context.Context, _, _ int64) ([]*model.Event, error) {
	return nil, f.err
}

func (f *fakeEvents) ExportCalendar(_ context.Context, _, _ int64) (string, error) {
	return "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n", f.err
}

func (f *fakeEvents) DeleteEvent(_ context.Context, _, _ int64) error {
	f.calls = append(f.calls, "delete")
	return f.err
}

func (f *fakeEvents) MarkDone(_ context.Context, _, _ int64) error {
	f.calls = append(f.calls, "done")
	return f.err
}

func (f *fakeEvents) MarkUndone(_ context.Context, _, _ int64) error {
	f.calls = append(f.calls, "undone")
	return f.err
}

type fakeReminders struct {
	err error
}

func (f *fakeReminders) ListActive(_ context.Context, _ int64) ([]*model.ActiveReminder, error) {
	return []*model.ActiveReminder{{
		Reminder:   model.Reminder{ID: 3, EventID: 1, RemindAt: testNow, Channel: model.ChannelSMS},
		EventTitle: "Standup",
	}}, f.err
}

func (f *fakeReminders) CountActive(_ context.Context, _ int64) (int64, error) {
	return 1, f.err
}

func (f *fakeReminders) MarkRead(_ context.Context, _, _ int64) error {
	return f.err
}

type testApi struct {
	*Api
	token     string
	calendars *fakeCalendars
	events    *fakeEvents
	reminders *fakeReminders
}

func newTestApi(t *testing.T) *testApi {
	jwts := jwt.NewManger("secret", time.Hour)
	token, err := jwts.CreateToken(1)
	require.NoError(t, err)

	ta := &testApi{
		token:     token,
		calendars: &fakeCalendars{},
		events:    &fakeEvents{},
		reminders: &fakeReminders{},
	}

	ta.Api, err = NewApi(zap.NewNop().Sugar(), clock.Fixed(testNow), time.UTC, jwts, ta.calendars, ta.events, ta.reminders)
	require.NoError(t, err)

	return ta
}

func (ta *testApi) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+ta.token)

	rec := httptest.NewRecorder()
	ta.ServeHTTP(rec, req)
	return rec
}

func TestApi_Auth(t *testing.T) {
	ta := newTestApi(t)

	rec := httptest.NewRecorder()
	ta.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	ta.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reminders/active", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	ta.token = "garbage"
	assert.Equal(t, http.StatusUnauthorized, ta.do(http.MethodGet, "/reminders/active", "").Code)
}

func TestApi_CreateEvent(t *testing.T) {
	ta := newTestApi(t)

	rec := ta.do(http.MethodPost, "/events", `{
		"calendar_id": 1,
		"title": "Standup",
		"start_time": "2025-01-02T10:00:00Z",
		"end_time": "2025-01-02T10:15",
		"recurrence": {"from_date": "2025-01-02", "type": "DAILY"},
		"reminder": {"remind_at": "2025-01-02T09:30:00Z"}
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	info := ta.events.created
	require.NotNil(t, info)
	assert.Equal(t, int64(1), ta.events.ownerID)
	assert.Equal(t, time.Date(2025, 1, 2, 10, 15, 0, 0, time.UTC), *info.EndTime)
	assert.Equal(t, model.RecurrenceTypeDaily, info.Recurrence.Type)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), info.Recurrence.FromDate)
	assert.Equal(t, model.ChannelPush, info.Reminder.Channel)

	var resp eventResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Standup", resp.Title)
	require.NotNil(t, resp.Recurrence)
	assert.Equal(t, "2025-01-02", resp.Recurrence.FromDate)
	assert.Contains(t, resp.Recurrence.Rule, "FREQ=DAILY")
	require.NotNil(t, resp.Reminder)
	assert.Equal(t, model.ChannelPush, resp.Reminder.Channel)
}

func TestApi_CreateEvent_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		code  int
		field string
	}{
		{
			name:  "missing title",
			body:  `{"calendar_id": 1, "start_time": "2025-01-02T10:00:00Z"}`,
			code:  http.StatusUnprocessableEntity,
			field: "title",
		},
		{
			name:  "bad start time",
			body:  `{"calendar_id": 1, "title": "t", "start_time": "tomorrow"}`,
			code:  http.StatusUnprocessableEntity,
			field: "start_time",
		},
		{
			name:  "reminder in the past",
			body:  `{"calendar_id": 1, "title": "t", "start_time": "2025-01-02T10:00:00Z", "reminder": {"remind_at": "2024-12-31T10:00:00Z"}}`,
			code:  http.StatusUnprocessableEntity,
			field: "reminder.remind_at",
		},
		{
			name:  "recurrence without from date",
			body:  `{"calendar_id": 1, "title": "t", "start_time": "2025-01-02T10:00:00Z", "recurrence": {"type": "WEEKLY"}}`,
			code:  http.StatusUnprocessableEntity,
			field: "recurrence.from_date",
		},
		{
			name: "unknown priority",
			body: `{"calendar_id": 1, "title": "t", "start_time": "2025-01-02T10:00:00Z", "priority": "URGENT"}`,
			code: http.StatusBadRequest,
		},
		{
			name: "unknown field",
			body: `{"calendar_id": 1, "title": "t", "start_time": "2025-01-02T10:00:00Z", "color": "red"}`,
			code: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApi(t)

			rec := ta.do(http.MethodPost, "/events", tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
			assert.Nil(t, ta.events.created)

			if tt.field != "" {
				var resp struct {
					Error map[string]string `json:"error"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Contains(t, resp.Error, tt.field)
			}
		})
	}
}

func TestApi_CreateEvent_InvalidRange(t *testing.T) {
	ta := newTestApi(t)
	ta.events.err = model.ErrInvalidRange

	rec := ta.do(http.MethodPost, "/events", `{"calendar_id": 1, "title": "t", "start_time": "2025-01-02T10:00:00Z", "end_time": "2025-01-02T09:00:00Z"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "end_time")
}

func TestApi_EventActions(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		err    error
		code   int
		call   string
	}{
		{name: "done", method: http.MethodPost, target: "/events/1/done", code: http.StatusNoContent, call: "done"},
		{name: "undone", method: http.MethodPost, target: "/events/1/undone", code: http.StatusNoContent, call: "undone"},
		{name: "delete", method: http.MethodDelete, target: "/events/1", code: http.StatusNoContent, call: "delete"},
		{name: "forbidden", method: http.MethodPost, target: "/events/1/done", err: model.ErrForbidden, code: http.StatusForbidden, call: "done"},
		{name: "not found", method: http.MethodPost, target: "/events/1/done", err: model.ErrNoRecord, code: http.StatusNotFound, call: "done"},
		{name: "locked", method: http.MethodPost, target: "/events/1/done", err: model.ErrLocked, code: http.StatusConflict, call: "done"},
		{name: "bad id", method: http.MethodPost, target: "/events/abc/done", code: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApi(t)
			ta.events.err = tt.err

			rec := ta.do(tt.method, tt.target, "")
			assert.Equal(t, tt.code, rec.Code)

			if tt.call == "" {
				assert.Empty(t, ta.events.calls)
			} else {
				assert.Equal(t, []string{tt.call}, ta.events.calls)
			}
		})
	}
}

func TestApi_Reminders(t *testing.T) {
	ta := newTestApi(t)

	rec := ta.do(http.MethodGet, "/reminders/active", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []reminderResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, int64(3), list[0].ID)
	assert.Equal(t, "Standup", list[0].EventTitle)

	rec = ta.do(http.MethodGet, "/reminders/active/count", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count": 1}`, rec.Body.String())

	assert.Equal(t, http.StatusNoContent, ta.do(http.MethodPost, "/reminders/3/read", "").Code)

	ta.reminders.err = model.ErrForbidden
	assert.Equal(t, http.StatusForbidden, ta.do(http.MethodPost, "/reminders/3/read", "").Code)
}

func TestApi_Calendars(t *testing.T) {
	ta := newTestApi(t)

	rec := ta.do(http.MethodPost, "/calendars", `{"name": "Work"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, ta.calendars.created)
	assert.Equal(t, "Work", ta.calendars.created.Name)
	assert.Contains(t, rec.Body.String(), `"id":5`)

	assert.Equal(t, http.StatusUnprocessableEntity, ta.do(http.MethodPost, "/calendars", `{"name": ""}`).Code)

	rec = ta.do(http.MethodGet, "/calendars", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Work"`)

	rec = ta.do(http.MethodGet, "/calendars/1/events.ics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")

	ta.events.err = model.ErrForbidden
	assert.Equal(t, http.StatusForbidden, ta.do(http.MethodGet, "/calendars/1/events", "").Code)
}

func TestApi_UpdateCalendar(t *testing.T) {
	ta := newTestApi(t)

	rec := ta.do(http.MethodPut, "/calendars/1", `{"name": "Office", "description": "9 to 5"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, ta.calendars.updated)
	assert.Equal(t, "9 to 5", ta.calendars.updated.Description)
	assert.Contains(t, rec.Body.String(), `"name":"Office"`)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"other owner", "/calendars/2", `{"name": "Office"}`, http.StatusForbidden},
		{"missing", "/calendars/42", `{"name": "Office"}`, http.StatusNotFound},
		{"empty name", "/calendars/1", `{"name": ""}`, http.StatusUnprocessableEntity},
		{"long name", "/calendars/1", `{"name": "` + strings.Repeat("x", model.MaxCalendarNameLength+1) + `"}`, http.StatusUnprocessableEntity},
		{"bad id", "/calendars/abc", `{"name": "Office"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, ta.do(http.MethodPut, tt.path, tt.body).Code)
		})
	}
}

func TestApi_DeleteCalendar(t *testing.T) {
	ta := newTestApi(t)

	assert.Equal(t, http.StatusNoContent, ta.do(http.MethodDelete, "/calendars/1", "").Code)
	assert.Equal(t, []int64{1}, ta.calendars.deleted)

	assert.Equal(t, http.StatusForbidden, ta.do(http.MethodDelete, "/calendars/2", "").Code)
	assert.Equal(t, http.StatusNotFound, ta.do(http.MethodDelete, "/calendars/42", "").Code)
	assert.Equal(t, []int64{1}, ta.calendars.deleted)
}
