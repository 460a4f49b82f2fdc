package models

// StatusKind names an application status the system relies on even if it is absent from reference data
type StatusKind string

const (
	StatusKindAccepted StatusKind = "accepted"
	StatusKindRejected StatusKind = "rejected"
)

type StatusFallback struct {
	Slugs        []string // canonical slug first
	NamePatterns []string // case-insensitive substrings of the status name
	Name         string   // name of the record created when nothing matches
	Color        string
}

var StatusFallbacks = map[StatusKind]StatusFallback{
	StatusKindAccepted: {
		Slugs:        []string{"accepted", "hired", "offer-accepted"},
		NamePatterns: []string{"accept", "hire"},
		Name:         "Accepted",
		Color:        "#2e7d32",
	},
	StatusKindRejected: {
		Slugs:        []string{"rejected", "declined", "not-selected"},
		NamePatterns: []string{"reject", "decline"},
		Name:         "Rejected",
		Color:        "#c62828",
	},
}

const (
	HistoryNoteSubmitted = "Application submitted"
	HistoryNoteAccepted  = "Application accepted"
	HistoryNoteRejected  = "Application rejected"
)
