package home

import (
	"context"
	"net/http"
	"strings"
	"time"

	"devhub/models"
	"devhub/utils"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

const (
	Tagline  = "The Hub For Every Dev Events You Cant Miss"
	Subtitle = "Hackathons, Meetups, and Conferences All in one place"
)

// EventLister is the slice of the event service the landing page reads.
type EventLister interface {
	List(ctx context.Context, skip, limit int64) ([]models.Event, int64, error)
}

type Handler struct {
	events   EventLister
	featured int64
	log      *zap.Logger
	sections map[string]func(ctx context.Context) (any, error)
}

func NewHandler(events EventLister, featured int64, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handler{events: events, featured: featured, log: log}
	h.sections = map[string]func(ctx context.Context) (any, error){
		"hero":     wrap(func(context.Context) (map[string]string, error) { return heroContent(), nil }),
		"featured": wrap(h.featuredEvents),
	}
	return h
}

func wrap[T any](fn func(ctx context.Context) (T, error)) func(ctx context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		return fn(ctx)
	}
}

func heroContent() map[string]string {
	return map[string]string{"tagline": Tagline, "subtitle": Subtitle, "explore": "/api/events"}
}

func (h *Handler) featuredEvents(ctx context.Context) ([]models.Event, error) {
	list, _, err := h.events.List(ctx, 0, h.featured)
	return list, err
}

// GetHome renders the whole landing page.
func (h *Handler) GetHome(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	hero := heroContent()
	featured, err := h.featuredEvents(ctx)
	if err != nil {
		h.log.Error("load featured events", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=60")
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"tagline":  hero["tagline"],
		"subtitle": hero["subtitle"],
		"featured": featured,
	})
}

// GetHomeContent renders a single landing section.
func (h *Handler) GetHomeContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	section := strings.ToLower(ps.ByName("section"))

	load, ok := h.sections[section]
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Invalid section")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	data, err := load(ctx)
	if err != nil {
		h.log.Error("load home section", zap.String("section", section), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=60")
	utils.RespondWithJSON(w, http.StatusOK, data)
}
