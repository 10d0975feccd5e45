package domain

// SettlementStatus summarises how far a settlement pipeline got.
type SettlementStatus string

const (
	SettlementOK      SettlementStatus = "ok"
	SettlementPartial SettlementStatus = "partial"
	SettlementFailed  SettlementStatus = "failed"
)

// SettlementResult is returned by the document pipelines instead of a bare error,
// so callers can tell "document failed but email sent" apart from full success.
type SettlementResult struct {
	Status    SettlementStatus `json:"status"`
	Detail    string           `json:"detail"`
	Document  *Document        `json:"document,omitempty"`
	EmailSent bool             `json:"emailSent"`
	Errors    []string         `json:"errors,omitempty"`
	Included  []string         `json:"included,omitempty"`
	Skipped   []string         `json:"skipped,omitempty"`
}

// SettlementStatusFor derives the status from the two outcomes that matter.
func SettlementStatusFor(primaryOK, emailOK bool) SettlementStatus {
	switch {
	case primaryOK && emailOK:
		return SettlementOK
	case primaryOK || emailOK:
		return SettlementPartial
	}
	return SettlementFailed
}
