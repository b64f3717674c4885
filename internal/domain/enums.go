package domain

// DocumentType identifies a registered document schema.
type DocumentType string

const (
	DocumentTypePrescription     DocumentType = "prescription"
	DocumentTypeScanReport       DocumentType = "scan_report"
	DocumentTypeMRIReport        DocumentType = "mri_report"
	DocumentTypeUltrasoundReport DocumentType = "ultrasound_report"
)

// ImportanceTier classifies how a field affects completeness. Critical fields
// gate document export; high and medium fields are advisory only.
type ImportanceTier string

const (
	TierCritical ImportanceTier = "critical"
	TierHigh     ImportanceTier = "high"
	TierMedium   ImportanceTier = "medium"
)

var tierRank = map[ImportanceTier]int{
	TierCritical: 0,
	TierHigh:     1,
	TierMedium:   2,
}

// Rank returns the sort rank of the tier (critical first). Unknown tiers sort
// last.
func (t ImportanceTier) Rank() int {
	if r, ok := tierRank[t]; ok {
		return r
	}
	return len(tierRank)
}

// SessionState is the dialogue state of a session. It is recomputed from the
// current record every turn: a session can move back from complete to
// collecting if a critical field is explicitly cleared.
type SessionState string

const (
	SessionStateCollecting SessionState = "collecting"
	SessionStateComplete   SessionState = "complete"
)
