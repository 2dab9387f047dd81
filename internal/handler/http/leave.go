package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/solacehr/leave-backend-go/internal/domain/leave"
	"github.com/solacehr/leave-backend-go/internal/handler/http/middleware"
	"github.com/solacehr/leave-backend-go/internal/handler/http/response"
	"github.com/solacehr/leave-backend-go/internal/pkg/validator"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	ListByPeriod(w http.ResponseWriter, r *http.Request)

	ListPending(w http.ResponseWriter, r *http.Request)
	ReviewQueue(w http.ResponseWriter, r *http.Request)
	GetRequestConflicts(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RefuseRequest(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	conflicts    leave.ConflictEvaluator
}

func NewLeaveHandler(leaveService leave.LeaveService, conflicts leave.ConflictEvaluator) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
		conflicts:    conflicts,
	}
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := l.leaveService.CreateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", created)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(requestID) {
		response.BadRequest(w, "Invalid request ID", nil)
		return
	}

	request, err := l.leaveService.GetLeaveRequest(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	requests, err := l.leaveService.ListMyLeaveRequests(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	requestID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(requestID) {
		response.BadRequest(w, "Invalid request ID", nil)
		return
	}

	if err := l.leaveService.CancelLeaveRequest(r.Context(), requestID, userID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", nil)
}

// ListByPeriod implements LeaveHandler.
func (l *LeaveHandlerImpl) ListByPeriod(w http.ResponseWriter, r *http.Request) {
	filter := leave.PeriodFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	requests, err := l.leaveService.ListLeaveRequestsByPeriod(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListPending implements LeaveHandler. An optional team_id query
// parameter narrows the queue to one team.
func (l *LeaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	var requests []leave.LeaveRequestResponse
	var err error

	if teamID := r.URL.Query().Get("team_id"); teamID != "" {
		if !validator.IsValidUUID(teamID) {
			response.BadRequest(w, "Invalid team ID", nil)
			return
		}
		requests, err = l.leaveService.ListPendingLeaveRequestsByTeam(r.Context(), teamID)
	} else {
		requests, err = l.leaveService.ListPendingLeaveRequests(r.Context())
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ReviewQueue implements LeaveHandler. The whole pending queue with
// conflicts attached, evaluated in one batch pass.
func (l *LeaveHandlerImpl) ReviewQueue(w http.ResponseWriter, r *http.Request) {
	items, err := l.conflicts.EvaluatePending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}

// GetRequestConflicts implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequestConflicts(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(requestID) {
		response.BadRequest(w, "Invalid request ID", nil)
		return
	}

	conflicts, err := l.conflicts.EvaluateRequest(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, conflicts)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	approverID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	requestID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(requestID) {
		response.BadRequest(w, "Invalid request ID", nil)
		return
	}

	if err := l.leaveService.ApproveLeaveRequest(r.Context(), requestID, approverID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", nil)
}

// RefuseRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RefuseRequest(w http.ResponseWriter, r *http.Request) {
	approverID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	requestID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(requestID) {
		response.BadRequest(w, "Invalid request ID", nil)
		return
	}

	var req leave.RefuseLeaveRequestRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("RefuseRequest decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.RequestID = requestID
	req.ApproverID = approverID

	if err := l.leaveService.RefuseLeaveRequest(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request refused", nil)
}
