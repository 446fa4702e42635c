package activity

import (
	"context"
	"net/http"

	"github.com/frahmantamala/absence-request/internal/transport"
)

type ServiceAPI interface {
	ListActivities(ctx context.Context) ([]CategoryResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.Service.ListActivities(r.Context())
	if err != nil {
		h.Logger.Error("ListActivities: failed to get activities", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, CategoriesResponse{
		Activities: activities,
	})
}
