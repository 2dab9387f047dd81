package leave

// ConflictType identifies which staffing rule a conflict came from.
type ConflictType string

const (
	ConflictTeamCapacity      ConflictType = "TEAM_CAPACITY"
	ConflictLeadMemberOverlap ConflictType = "LEAD_MEMBER_OVERLAP"
	ConflictMemberLeadOverlap ConflictType = "MEMBER_LEAD_OVERLAP"
)

type ConflictSeverity string

const (
	SeverityWarning ConflictSeverity = "warning"
	SeverityHigh    ConflictSeverity = "high"
)

// Conflict is an advisory finding produced by the evaluators. Conflicts
// are data, not errors: they are surfaced to the reviewer next to the
// decision actions and never block approval. The numeric inputs that
// produced the finding are carried so callers can assert on them
// without parsing the message.
type Conflict struct {
	Type     ConflictType     `json:"type"`
	Severity ConflictSeverity `json:"severity"`
	Message  string           `json:"message"`

	// Percentage is the projected simultaneous-absence ratio, rounded
	// to one decimal. Set for TEAM_CAPACITY conflicts only.
	Percentage float64 `json:"percentage,omitempty"`
	// Overlapping is the count of distinct team members whose approved
	// leave intersects the candidate range.
	Overlapping int `json:"overlapping,omitempty"`
}
