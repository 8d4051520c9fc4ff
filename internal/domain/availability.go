package domain

// ParticipantRef is the projection of a participant carried inside
// aggregation output (per-slot participant lists, roster).
type ParticipantRef struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	UserID *string `json:"userId,omitempty"`
}

// AvailabilityEntry aggregation output for a single slot id:
// how many participants are available and who they are.
type AvailabilityEntry struct {
	Count        int              `json:"count"`
	Participants []ParticipantRef `json:"participants"`
}

// HasResponses returns true if at least one participant marked this slot
func (e *AvailabilityEntry) HasResponses() bool {
	return e != nil && e.Count > 0
}
