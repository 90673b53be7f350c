package models

// BulkOperationKind selects the single-item operation a bulk call applies.
type BulkOperationKind string

const (
	BulkOperationMove   BulkOperationKind = "move"
	BulkOperationUpdate BulkOperationKind = "update"
	BulkOperationDelete BulkOperationKind = "delete"
)

// BulkItemError pairs a failed allocation id with its error message.
type BulkItemError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BulkResult is the complete per-item accounting of a bulk operation; one
// item's failure never aborts the remaining items.
type BulkResult struct {
	Successful []string        `json:"successful"`
	Failed     []string        `json:"failed"`
	Errors     []BulkItemError `json:"errors"`
}
