package api

import (
	"context"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/pkg/validator"
)

type eventAction func(ctx context.Context, eventID, ownerID int64) error

func (a *Api) createEventHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	req := &struct {
		CalendarID  int64          `json:"calendar_id"`
		Title       string         `json:"title"`
		Description string         `json:"description"`
		StartTime   string         `json:"start_time"`
		EndTime     *string        `json:"end_time"`
		Priority    model.Priority `json:"priority"`
		Recurrence  *struct {
			FromDate  string               `json:"from_date"`
			UntilDate *string              `json:"until_date"`
			Type      model.RecurrenceType `json:"type"`
		} `json:"recurrence"`
		Reminder *struct {
			RemindAt *string       `json:"remind_at"`
			Channel  model.Channel `json:"channel"`
		} `json:"reminder"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()

	v.Check(req.CalendarID > 0, "calendar_id", "calendar_id must be provided")
	v.Check(len(req.Title) != 0, "title", "title must be provided")
	v.Check(utf8.RuneCountInString(req.Title) <= model.MaxTitleLength, "title",
		fmt.Sprintf("title must not be longer than %d characters", model.MaxTitleLength))
	v.Check(utf8.RuneCountInString(req.Description) <= model.MaxDescriptionLength, "description",
		fmt.Sprintf("description must not be longer than %d characters", model.MaxDescriptionLength))

	info := &model.EventCreate{
		CalendarID:  req.CalendarID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	}

	if req.StartTime == "" {
		v.AddError("start_time", "start_time must be provided")
	} else if t, err := a.parseDateTime(req.StartTime); err != nil {
		v.AddError("start_time", err.Error())
	} else {
		info.StartTime = t
	}

	if req.EndTime != nil {
		if t, err := a.parseDateTime(*req.EndTime); err != nil {
			v.AddError("end_time", err.Error())
		} else {
			info.EndTime = &t
		}
	}

	if rec := req.Recurrence; rec != nil && rec.Type != "" && rec.Type != model.RecurrenceTypeNone {
		info.Recurrence = &model.RecurrenceCreate{Type: rec.Type}

		if rec.FromDate == "" {
			v.AddError("recurrence.from_date", "from_date must be provided")
		} else if d, err := parseDate(rec.FromDate); err != nil {
			v.AddError("recurrence.from_date", err.Error())
		} else {
			info.Recurrence.FromDate = d
		}

		if rec.UntilDate != nil {
			if d, err := parseDate(*rec.UntilDate); err != nil {
				v.AddError("recurrence.until_date", err.Error())
			} else {
				info.Recurrence.UntilDate = &d
			}
		}
	}

	if rem := req.Reminder; rem != nil && rem.RemindAt != nil {
		channel := rem.Channel
		if channel == "" {
			channel = model.ChannelPush
		}
		info.Reminder = &model.ReminderCreate{Channel: channel}

		if t, err := a.parseDateTime(*rem.RemindAt); err != nil {
			v.AddError("reminder.remind_at", err.Error())
		} else {
			v.Check(t.After(a.clock.Now()), "reminder.remind_at", "remind_at must be in the future")
			info.Reminder.RemindAt = &t
		}
	}

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	event, err := a.eventsService.CreateEvent(r.Context(), ownerID, info)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("create event: %w", err))
		return
	}

	resp, err := mapToEventResp(event)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getEventHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	eventID, ok := urlID(r, "eventID")
	if !ok {
		a.notFoundResponse(w, r)
		return
	}

	event, err := a.eventsService.GetEvent(r.Context(), eventID, ownerID)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get event: %w", err))
		return
	}

	resp, err := mapToEventResp(event)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteEventHandler(w http.ResponseWriter, r *http.Request) {
	a.eventActionHandler(w, r, a.eventsService.DeleteEvent)
}

func (a *Api) markDoneHandler(w http.ResponseWriter, r *http.Request) {
	a.eventActionHandler(w, r, a.eventsService.MarkDone)
}

// markUndoneHandler reopens an event. A successor already spawned when the event
// was completed is not removed.
func (a *Api) markUndoneHandler(w http.ResponseWriter, r *http.Request) {
	a.eventActionHandler(w, r, a.eventsService.MarkUndone)
}

func (a *Api) eventActionHandler(w http.ResponseWriter, r *http.Request, action eventAction) {
	ownerID, ok := userID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	eventID, ok := urlID(r, "eventID")
	if !ok {
		a.notFoundResponse(w, r)
		return
	}

	if err := action(r.Context(), eventID, ownerID); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("event %v: %w", eventID, err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
