package leave

import (
	"fmt"
	"math"

	"github.com/solacehr/leave-backend-go/internal/domain/leave"
	"github.com/solacehr/leave-backend-go/internal/domain/user"
	"github.com/solacehr/leave-backend-go/internal/pkg/daterange"
)

// teamCapacityThreshold is the projected simultaneous-absence ceiling,
// in percent. Strictly above it raises a TEAM_CAPACITY conflict.
const teamCapacityThreshold = 30.0

// teamSnapshot is everything the staffing rules need about one team,
// already fetched. Absences may span a wider window than the candidate
// request; the rules re-filter against the candidate's own range.
type teamSnapshot struct {
	Size     int
	LeadID   string
	Absences []leave.AbsenceWindow
}

// evaluateRules applies the three staffing rules to one candidate
// request against an in-memory team snapshot. Both evaluator paths
// funnel through here, so single and batch evaluation cannot drift.
// Rules are additive; order in the result is stable: capacity first,
// then the role-gated overlap rule.
func evaluateRules(request leave.LeaveRequest, role user.Role, snap teamSnapshot) []leave.Conflict {
	conflicts := []leave.Conflict{}

	var overlapping []leave.AbsenceWindow
	onLeave := make(map[string]bool)
	for _, w := range snap.Absences {
		if !daterange.Overlaps(w.StartDate, w.EndDate, request.StartDate, request.EndDate) {
			continue
		}
		overlapping = append(overlapping, w)
		onLeave[w.UserID] = true
	}

	// Rule 1: team capacity. The candidate counts as the +1.
	if snap.Size > 0 {
		projected := len(onLeave) + 1
		percentage := math.Round(float64(projected)/float64(snap.Size)*100*10) / 10
		if percentage > teamCapacityThreshold {
			conflicts = append(conflicts, leave.Conflict{
				Type:     leave.ConflictTeamCapacity,
				Severity: leave.SeverityHigh,
				Message: fmt.Sprintf(
					"Approving this would result in %.1f%% of the team being absent (limit: %.0f%%). Currently %d member(s) are approved for leave.",
					percentage, teamCapacityThreshold, len(onLeave)),
				Percentage:  percentage,
				Overlapping: len(onLeave),
			})
		}
	}

	if role == user.RoleTeamLead {
		// Rule 2: a lead leaving while members are already absent.
		others := 0
		for id := range onLeave {
			if id != request.UserID {
				others++
			}
		}
		if others > 0 {
			conflicts = append(conflicts, leave.Conflict{
				Type:        leave.ConflictLeadMemberOverlap,
				Severity:    leave.SeverityWarning,
				Message:     "A team member is already on approved leave during this period.",
				Overlapping: others,
			})
		}
	} else if snap.LeadID != "" && onLeave[snap.LeadID] {
		// Rule 3: a member leaving while the lead is absent.
		conflicts = append(conflicts, leave.Conflict{
			Type:        leave.ConflictMemberLeadOverlap,
			Severity:    leave.SeverityWarning,
			Message:     "The team lead is on approved leave during this period.",
			Overlapping: 1,
		})
	}

	return conflicts
}
