package leave

import (
	"github.com/solacehr/leave-backend-go/internal/pkg/validator"
)

var leaveTypeValues = []string{
	string(LeaveTypeAnnual),
	string(LeaveTypeSick),
	string(LeaveTypeUnpaid),
}

type CreateLeaveRequestRequest struct {
	UserID      string  `json:"-"` // taken from the access token, never the body
	Type        string  `json:"type"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Reason      *string `json:"reason,omitempty"`
	MedicalFile *string `json:"medical_file,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Type, leaveTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of annual, sick, unpaid",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if LeaveType(r.Type) == LeaveTypeSick &&
		(r.MedicalFile == nil || validator.IsEmpty(*r.MedicalFile)) {
		errs = append(errs, validator.ValidationError{
			Field:   "medical_file",
			Message: "medical_file is required for sick leave",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RefuseLeaveRequestRequest struct {
	RequestID  string  `json:"-"`
	ApproverID string  `json:"-"`
	Reason     *string `json:"reason,omitempty"`
}

type PeriodFilter struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (f *PeriodFilter) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	UserName     *string `json:"user_name,omitempty"`
	Type         string  `json:"type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	DurationDays int     `json:"duration_days"`
	Status       string  `json:"status"`
	Reason       *string `json:"reason,omitempty"`
	MedicalFile  *string `json:"medical_file,omitempty"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
}

func ToResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		UserName:     r.UserName,
		Type:         string(r.Type),
		StartDate:    r.StartDate.Format("2006-01-02"),
		EndDate:      r.EndDate.Format("2006-01-02"),
		DurationDays: r.DurationDays(),
		Status:       string(r.Status),
		Reason:       r.Reason,
		MedicalFile:  r.MedicalFile,
		ApprovedBy:   r.ApprovedBy,
	}
}

// ReviewItemResponse pairs a pending request with its advisory
// conflicts for the approver's queue view.
type ReviewItemResponse struct {
	Request   LeaveRequestResponse `json:"request"`
	Conflicts []Conflict           `json:"conflicts"`
}
