package absence

import (
	"context"
	"net/http"

	"github.com/frahmantamala/absence-request/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Submit(ctx context.Context, dto CreateRequestDTO) (*AbsenceRequest, error)
	GetDetail(ctx context.Context, key RequestKey) (*AbsenceRequest, error)
	ListAll(ctx context.Context) ([]StaffListItem, error)
	ListForStudent(ctx context.Context, studentID int64) ([]StudentListItem, error)
	UpdateStatus(ctx context.Context, update StatusUpdate) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

// CreateRequest handles POST /requests
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var dto CreateRequestDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	req, err := h.Service.Submit(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resp := transport.Success("申請成功")
	resp.ID = req.ID
	h.WriteJSON(w, http.StatusCreated, resp)
}

// GetRequestDetail handles GET /requests2/{student_id}/{id}
func (h *Handler) GetRequestDetail(w http.ResponseWriter, r *http.Request) {
	key, err := ParseRequestKey(chi.URLParam(r, "student_id"), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	req, err := h.Service.GetDetail(r.Context(), key)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, req.ToDetailResponse())
}

// ListRequests handles GET /requests for staff.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListAll(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, items)
}

// ListStudentRequests handles GET /requests/{student_id}
func (h *Handler) ListStudentRequests(w http.ResponseWriter, r *http.Request) {
	studentID, err := ParseStudentID(chi.URLParam(r, "student_id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	items, err := h.Service.ListForStudent(r.Context(), studentID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, items)
}

// UpdateRequestStatus handles PATCH /requests/{student_id}/{id}
func (h *Handler) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	var dto UpdateStatusDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	update, err := ParseStatusUpdate(chi.URLParam(r, "student_id"), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.UpdateStatus(r.Context(), *update); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.Success("申請ステータスが更新されました"))
}
