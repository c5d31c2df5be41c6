package api

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/pkg/validator"
)

func (a *Api) getCalendarsHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	calendars, err := a.calendars.GetOwnerCalendars(r.Context(), ownerID)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get calendars of user %v: %w", ownerID, err))
		return
	}

	resp, _ := mapSlice(calendars, mapToCalendarResp)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) createCalendarHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	info, ok := a.readCalendarInfo(w, r)
	if !ok {
		return
	}

	calendar, err := a.calendars.CreateCalendar(r.Context(), ownerID, info)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("create calendar: %w", err))
		return
	}

	resp, _ := mapToCalendarResp(calendar)

	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateCalendarHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	calendarID, ok := urlID(r, "calendarID")
	if !ok {
		a.notFoundResponse(w, r)
		return
	}

	info, ok := a.readCalendarInfo(w, r)
	if !ok {
		return
	}

	calendar, err := a.calendars.UpdateCalendar(r.Context(), calendarID, ownerID, info)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("update calendar %v: %w", calendarID, err))
		return
	}

	resp, _ := mapToCalendarResp(calendar)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteCalendarHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	calendarID, ok := urlID(r, "calendarID")
	if !ok {
		a.notFoundResponse(w, r)
		return
	}

	if err := a.calendars.DeleteCalendar(r.Context(), calendarID, ownerID); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("delete calendar %v: %w", calendarID, err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// readCalendarInfo writes the error response itself when the body is rejected.
func (a *Api) readCalendarInfo(w http.ResponseWriter, r *http.Request) (*model.CalendarInfo, bool) {
	req := &struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return nil, false
	}

	v := validator.New()

	v.Check(len(req.Name) != 0, "name", "name must be provided")
	v.Check(utf8.RuneCountInString(req.Name) <= model.MaxCalendarNameLength, "name",
		fmt.Sprintf("name must not be longer than %d characters", model.MaxCalendarNameLength))
	v.Check(utf8.RuneCountInString(req.Description) <= model.MaxCalendarDescriptionLength, "description",
		fmt.Sprintf("description must not be longer than %d characters", model.MaxCalendarDescriptionLength))

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return nil, false
	}

	return &model.CalendarInfo{Name: req.Name, Description: req.Description}, true
}

func (a *Api) getCalendarEventsHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	calendarID, ok := urlID(r, "calendarID")
	if !ok {
		a.notFoundResponse(w, r)
		return
	}

	events, err := a.eventsService.GetCalendarEvents(r.Context(), calendarID, ownerID)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get calendar events: %w", err))
		return
	}

	resp, err := mapSlice(events, mapToEventResp)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) exportCalendarHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	calendarID, ok := urlID(r, "calendarID")
	if !ok {
		a.notFoundResponse(w, r)
		return
	}

	body, err := a.eventsService.ExportCalendar(r.Context(), calendarID, ownerID)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("export calendar: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
