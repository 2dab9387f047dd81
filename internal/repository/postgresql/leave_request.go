package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/solacehr/leave-backend-go/internal/domain/leave"
	"github.com/solacehr/leave-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.user_id, lr.type, lr.start_date, lr.end_date,
	lr.status, lr.reason, lr.medical_file, lr.approved_by, lr.rejection_reason,
	lr.created_at, lr.updated_at,
	u.full_name as user_name
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	var userName string

	err := row.Scan(
		&req.ID, &req.UserID, &req.Type, &req.StartDate, &req.EndDate,
		&req.Status, &req.Reason, &req.MedicalFile, &req.ApprovedBy, &req.RejectionReason,
		&req.CreatedAt, &req.UpdatedAt,
		&userName,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	req.UserName = &userName
	return req, nil
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("generate request id: %w", err)
	}

	query := `
		INSERT INTO leave_requests (
			id, user_id, type,
			start_date, end_date,
			status, reason, medical_file,
			created_at, updated_at
		) VALUES (
			$1, $2, $3,
			$4, $5,
			$6, $7, $8,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id.String(), request.UserID, request.Type,
		request.StartDate, request.EndDate,
		request.Status, request.Reason, request.MedicalFile,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to insert leave request: %w", err)
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN users u ON lr.user_id = u.id
		WHERE lr.id = $1
	`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return req, nil
}

func (r *leaveRequestRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN users u ON lr.user_id = u.id
		WHERE lr.user_id = $1
		ORDER BY lr.start_date DESC
	`
	return r.list(ctx, query, userID)
}

func (r *leaveRequestRepositoryImpl) ListPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN users u ON lr.user_id = u.id
		WHERE lr.status = 'pending'
		ORDER BY lr.created_at ASC
	`
	return r.list(ctx, query)
}

func (r *leaveRequestRepositoryImpl) ListPendingByTeam(ctx context.Context, teamID string) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN users u ON lr.user_id = u.id
		WHERE lr.status = 'pending' AND u.team_id = $1
		ORDER BY lr.created_at ASC
	`
	return r.list(ctx, query, teamID)
}

func (r *leaveRequestRepositoryImpl) ListByPeriod(ctx context.Context, start, end time.Time) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		JOIN users u ON lr.user_id = u.id
		WHERE lr.start_date <= $2 AND lr.end_date >= $1
		ORDER BY lr.start_date ASC
	`
	return r.list(ctx, query, start, end)
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

func (r *leaveRequestRepositoryImpl) HasOverlapping(
	ctx context.Context,
	userID string,
	start, end time.Time,
) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
        SELECT EXISTS (
            SELECT 1
            FROM leave_requests
            WHERE user_id = $1
            AND status IN ('pending', 'approved')
            AND start_date <= $3 AND end_date >= $2
        )
    `

	var exists bool
	err := q.QueryRow(ctx, query, userID, start, end).Scan(&exists)

	return exists, err
}

func (r *leaveRequestRepositoryImpl) MarkDecided(
	ctx context.Context,
	id string,
	status leave.LeaveStatus,
	approverID string,
	rejectionReason *string,
) (bool, error) {
	q := GetQuerier(ctx, r.db)

	// Status guard doubles as the concurrency check: of two racing
	// approvers only one UPDATE matches the pending row.
	query := `
		UPDATE leave_requests
		SET status = $2, approved_by = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, id, status, approverID, rejectionReason)
	if err != nil {
		return false, fmt.Errorf("failed to decide leave request %s: %w", id, err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *leaveRequestRepositoryImpl) DeletePending(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM leave_requests
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete leave request %s: %w", id, err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *leaveRequestRepositoryImpl) ListApprovedOverlapping(
	ctx context.Context,
	teamIDs []string,
	start, end time.Time,
) ([]leave.AbsenceWindow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.user_id, u.team_id, lr.start_date, lr.end_date
		FROM leave_requests lr
		JOIN users u ON lr.user_id = u.id
		WHERE lr.status = 'approved'
		AND u.team_id = ANY($1)
		AND lr.start_date <= $3 AND lr.end_date >= $2
	`

	rows, err := q.Query(ctx, query, teamIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved overlapping leaves: %w", err)
	}
	defer rows.Close()

	var windows []leave.AbsenceWindow
	for rows.Next() {
		var w leave.AbsenceWindow
		if err := rows.Scan(&w.UserID, &w.TeamID, &w.StartDate, &w.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan absence window: %w", err)
		}
		windows = append(windows, w)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return windows, nil
}
