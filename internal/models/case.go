package models

import "time"

// Case statuses reported by the intake bot. Any other value is stored
// verbatim but populates neither timestamp column.
const (
	StatusParsed = "PARSED"
	StatusSaved  = "SAVED"
)

// FieldFallback is stored in place of any string field the bot omitted.
const FieldFallback = "N/A"

// BotEvent is the POST /api/bot/event payload.
type BotEvent struct {
	Status        string `json:"status"`
	PatientName   string `json:"patientName"`
	ALNumber      string `json:"alNumber"`
	PolicyNumber  string `json:"policyNumber"`
	HospitalGroup string `json:"hospitalGroup"`
	TPA           string `json:"tpa"`
}

// CaseInsert is one row to be written for an accepted bot event.
// updated_at and the identity column are filled by the database.
type CaseInsert struct {
	PatientName   string
	ALNumber      string
	PolicyNumber  string
	HospitalGroup string
	TPAName       string
	ParsedTime    *time.Time
	SavedTime     *time.Time
	Status        string
}

// NewCaseInsert builds the row for an accepted event: every omitted string
// field falls back to "N/A" and the status decides which timestamp column
// is populated.
func NewCaseInsert(ev BotEvent, now time.Time) CaseInsert {
	parsed, saved := StatusTimes(ev.Status, now)
	return CaseInsert{
		PatientName:   Coalesce(ev.PatientName, FieldFallback),
		ALNumber:      Coalesce(ev.ALNumber, FieldFallback),
		PolicyNumber:  Coalesce(ev.PolicyNumber, FieldFallback),
		HospitalGroup: Coalesce(ev.HospitalGroup, FieldFallback),
		TPAName:       Coalesce(ev.TPA, FieldFallback),
		ParsedTime:    parsed,
		SavedTime:     saved,
		Status:        ev.Status,
	}
}

// Coalesce returns v unless it is empty, in which case fallback is returned.
func Coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// StatusTimes maps a status to its timestamp columns: PARSED sets
// parsed_time, SAVED sets saved_time, anything else sets neither.
func StatusTimes(status string, now time.Time) (parsed, saved *time.Time) {
	switch status {
	case StatusParsed:
		return &now, nil
	case StatusSaved:
		return nil, &now
	default:
		return nil, nil
	}
}

// CaseRecord mirrors one bot_dashboard_cases row. Listings serialize the
// full row; nullable timestamps come out as JSON null.
type CaseRecord struct {
	ID            int64      `json:"id"`
	PatientName   string     `json:"patient_name"`
	ALNumber      string     `json:"al_number"`
	PolicyNumber  string     `json:"policy_number"`
	HospitalGroup string     `json:"hospital_group"`
	TPAName       string     `json:"tpa_name"`
	ParsedTime    *time.Time `json:"parsed_time"`
	SavedTime     *time.Time `json:"saved_time"`
	Status        string     `json:"status"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// StatusCounts is the GET /api/dashboard/counts response.
type StatusCounts struct {
	Parsed int64 `json:"parsed"`
	Saved  int64 `json:"saved"`
}

// HospitalCount is one GET /api/dashboard/by-hospital row.
type HospitalCount struct {
	HospitalGroup string `json:"hospital_group"`
	Count         int64  `json:"count"`
}

// TPACount is one GET /api/dashboard/by-tpa row.
type TPACount struct {
	TPAName string `json:"tpa_name"`
	Count   int64  `json:"count"`
}
