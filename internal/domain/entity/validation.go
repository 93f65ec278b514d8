package entity

import "unicode/utf8"

// Validate checks that every text field of the job is valid UTF-8.
// Empty fields are valid: no field is mandatory for a partner record.
func (j Job) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"reference", j.Reference},
		{"title", j.Title},
		{"description", j.Description},
		{"url", j.URL},
		{"company_name", j.CompanyName},
		{"publication", j.PublishedDate},
	}

	for _, f := range fields {
		if !utf8.ValidString(f.value) {
			return &ValidationError{Field: f.name, Message: "must be valid UTF-8"}
		}
	}
	return nil
}
