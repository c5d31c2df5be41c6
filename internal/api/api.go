package api

import (
	"context"
	"net/http"
	"time"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/clock"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Api struct {
	handler  http.Handler
	logger   *zap.SugaredLogger
	clock    clock.Clock
	location *time.Location

	jwts jwtManager

	calendars     calendarsService
	eventsService eventsService
	reminders     remindersService
}

type jwtManager interface {
	GetIdFromToken(token string) (int64, error)
}

type calendarsService interface {
	CreateCalendar(ctx context.Context, ownerID int64, info *model.CalendarInfo) (*model.Calendar, error)
	GetOwnerCalendars(ctx context.Context, ownerID int64) ([]*model.Calendar, error)
	UpdateCalendar(ctx context.Context, calendarID, ownerID int64, info *model.CalendarInfo) (*model.Calendar, error)
	DeleteCalendar(ctx context.Context, calendarID, ownerID int64) error
}

type eventsService interface {
	CreateEvent(ctx context.Context, ownerID int64, info *model.EventCreate) (*model.Event, error)
	GetEvent(ctx context.Context, eventID, ownerID int64) (*model.Event, error)
	GetCalendarEvents(ctx context.Context, calendarID, ownerID int64) ([]*model.Event, error)
	ExportCalendar(ctx context.Context, calendarID, ownerID int64) (string, error)
	DeleteEvent(ctx context.Context, eventID, ownerID int64) error
	MarkDone(ctx context.Context, eventID, ownerID int64) error
	MarkUndone(ctx context.Context, eventID, ownerID int64) error
}

type remindersService interface {
	ListActive(ctx context.Context, ownerID int64) ([]*model.ActiveReminder, error)
	CountActive(ctx context.Context, ownerID int64) (int64, error)
	MarkRead(ctx context.Context, reminderID, ownerID int64) error
}

func NewApi(
	logger *zap.SugaredLogger,
	clk clock.Clock,
	location *time.Location,
	jwts jwtManager,
	calendars calendarsService,
	eventsService eventsService,
	reminders remindersService,
) (*Api, error) {
	a := &Api{
		logger:        logger,
		clock:         clk,
		location:      location,
		jwts:          jwts,
		calendars:     calendars,
		eventsService: eventsService,
		reminders:     reminders,
	}
	a.setupHandler()

	return a, nil
}

func (a *Api) setupHandler() {
	logRequest := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(logRequest, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.With(a.auth).Route("/", func(r chi.Router) {
		r.Route("/calendars", func(r chi.Router) {
			r.Get("/", a.getCalendarsHandler)
			r.Post("/", a.createCalendarHandler)
			r.Put("/{calendarID}", a.updateCalendarHandler)
			r.Delete("/{calendarID}", a.deleteCalendarHandler)
			r.Get("/{calendarID}/events", a.getCalendarEventsHandler)
			r.Get("/{calendarID}/events.ics", a.exportCalendarHandler)
		})

		r.Route("/events", func(r chi.Router) {
			r.Post("/", a.createEventHandler)
			r.Get("/{eventID}", a.getEventHandler)
			r.Delete("/{eventID}", a.deleteEventHandler)
			r.Post("/{eventID}/done", a.markDoneHandler)
			r.Post("/{eventID}/undone", a.markUndoneHandler)
		})

		r.Route("/reminders", func(r chi.Router) {
			r.Get("/active", a.getActiveRemindersHandler)
			r.Get("/active/count", a.countActiveRemindersHandler)
			r.Post("/{reminderID}/read", a.markReminderReadHandler)
		})
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
