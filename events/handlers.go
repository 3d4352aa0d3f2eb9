package events

import (
	"context"
	"net/http"
	"time"

	"devhub/models"
	"devhub/utils"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Handlers exposes the event service over HTTP.
type Handlers struct {
	svc *Service
	log *zap.Logger
}

func NewHandlers(svc *Service, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{svc: svc, log: log}
}

// GetEvents lists events newest first.
func (h *Handlers) GetEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 10, 100)
	list, total, err := h.svc.List(ctx, skip, limit)
	if err != nil {
		h.fail(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"events":     list,
		"eventCount": total,
		"page":       skip/limit + 1,
		"limit":      limit,
	})
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	e, err := h.svc.GetBySlug(ctx, ps.ByName("slug"))
	if err != nil {
		h.fail(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, e)
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var e models.Event
	if err := utils.DecodeJSON(w, r, &e); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	// Identity, slug and timestamps are never taken from the caller.
	e = models.Event{
		Title: e.Title, Description: e.Description, Overview: e.Overview,
		Image: e.Image, Venue: e.Venue, Location: e.Location, Date: e.Date,
		Time: e.Time, Mode: e.Mode, Audience: e.Audience, Agenda: e.Agenda,
		Organizer: e.Organizer, Tags: e.Tags,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Create(ctx, &e); err != nil {
		h.fail(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, e)
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var patch models.EventPatch
	if err := utils.DecodeJSON(w, r, &patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	current, err := h.svc.GetBySlug(ctx, ps.ByName("slug"))
	if err != nil {
		h.fail(w, err)
		return
	}

	updated, err := h.svc.Update(ctx, current.ID, patch)
	if err != nil {
		h.fail(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handlers) fail(w http.ResponseWriter, err error) {
	utils.RespondWithAppError(w, h.log, err)
}
