package api

import (
	"fmt"
	"net/http"
)

func (a *Api) getActiveRemindersHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	reminders, err := a.reminders.ListActive(r.Context(), ownerID)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("list active reminders: %w", err))
		return
	}

	resp, _ := mapSlice(reminders, mapToReminderResp)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) countActiveRemindersHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	count, err := a.reminders.CountActive(r.Context(), ownerID)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("count active reminders: %w", err))
		return
	}

	resp := &struct {
		Count int64 `json:"count"`
	}{Count: count}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) markReminderReadHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := userID(r)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveID)
		return
	}

	reminderID, ok := urlID(r, "reminderID")
	if !ok {
		a.notFoundResponse(w, r)
		return
	}

	if err := a.reminders.MarkRead(r.Context(), reminderID, ownerID); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("mark reminder %v read: %w", reminderID, err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
