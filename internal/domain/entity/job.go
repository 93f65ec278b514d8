// Package entity defines the core domain entities and validation logic for the application.
// It contains the canonical job offer shared by every partner feed, along with
// its validation rules and domain-specific errors.
package entity

// Job is the canonical, partner-agnostic job offer.
//
// Every string field is always set: missing source data is the empty string.
// PublishedDate keeps the partner's own textual date, formats are not comparable.
// ID is zero until the repository persists the record.
type Job struct {
	ID            int64
	Reference     string
	Title         string
	Description   string
	URL           string
	CompanyName   string
	PublishedDate string
}

// HasID reports whether the job was read back from storage.
func (j Job) HasID() bool {
	return j.ID > 0
}

// ToMap flattens the job using the storage column names.
// The id key holds nil for jobs that were never persisted.
func (j Job) ToMap() map[string]any {
	var id any
	if j.HasID() {
		id = j.ID
	}
	return map[string]any{
		"id":           id,
		"reference":    j.Reference,
		"title":        j.Title,
		"description":  j.Description,
		"url":          j.URL,
		"company_name": j.CompanyName,
		"publication":  j.PublishedDate,
	}
}
