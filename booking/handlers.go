package booking

import (
	"context"
	"net/http"
	"time"

	"devhub/models"
	"devhub/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// EventFinder resolves an event slug for the per-event booking routes.
type EventFinder interface {
	GetBySlug(ctx context.Context, slug string) (*models.Event, error)
}

type Handlers struct {
	svc    *Service
	events EventFinder
	log    *zap.Logger
}

func NewHandlers(svc *Service, events EventFinder, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{svc: svc, events: events, log: log}
}

func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in models.BookingInput
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := h.svc.Create(ctx, in)
	if err != nil {
		utils.RespondWithAppError(w, h.log, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, b)
}

func (h *Handlers) UpdateBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid booking id")
		return
	}

	var patch models.BookingPatch
	if err := utils.DecodeJSON(w, r, &patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := h.svc.Update(ctx, id, patch)
	if err != nil {
		utils.RespondWithAppError(w, h.log, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// GetBookingCount reports how many people booked the event with the given slug.
func (h *Handlers) GetBookingCount(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	e, err := h.events.GetBySlug(ctx, ps.ByName("slug"))
	if err != nil {
		utils.RespondWithAppError(w, h.log, err)
		return
	}

	n, err := h.svc.CountForEvent(ctx, e.ID)
	if err != nil {
		utils.RespondWithAppError(w, h.log, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"eventId":  e.ID.Hex(),
		"slug":     e.Slug,
		"bookings": n,
	})
}
