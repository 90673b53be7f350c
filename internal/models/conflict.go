package models

// ConflictKind enumerates scheduling constraint violations.
type ConflictKind string

const (
	ConflictKindTimeOverlap    ConflictKind = "time_overlap"
	ConflictKindOverallocation ConflictKind = "overallocation"
)

// ConflictSeverity grades how urgent a conflict is.
type ConflictSeverity string

const (
	ConflictSeverityLow    ConflictSeverity = "low"
	ConflictSeverityMedium ConflictSeverity = "medium"
	ConflictSeverityHigh   ConflictSeverity = "high"
)

// Conflict is a derived finding over the allocation set. It is never
// persisted; the full set is recomputed after every mutation. IDs are
// deterministic over the participating allocation ids and kind so an
// unrelated mutation does not churn identities.
type Conflict struct {
	ID             string           `json:"id"`
	Kind           ConflictKind     `json:"kind"`
	AllocationIDs  []string         `json:"allocation_ids"`
	Message        string           `json:"message"`
	Severity       ConflictSeverity `json:"severity"`
	AutoResolvable bool             `json:"auto_resolvable"`
}
