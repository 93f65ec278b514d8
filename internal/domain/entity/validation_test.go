package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJob_Validate(t *testing.T) {
	tests := []struct {
		name      string
		job       Job
		wantField string
	}{
		{
			name: "all fields set",
			job: Job{
				Reference: "JT001", Title: "Data Scientist", Description: "<b>ok</b>",
				URL: "http://x/1", CompanyName: "FinanceAI", PublishedDate: "Mon Jan 15 10:30:00 CET 2024",
			},
		},
		{
			name: "all fields empty",
			job:  Job{},
		},
		{
			name:      "invalid title",
			job:       Job{Title: "bad \xff byte"},
			wantField: "title",
		},
		{
			name:      "invalid publication",
			job:       Job{Reference: "R1", PublishedDate: "\xc3\x28"},
			wantField: "publication",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var vErr *ValidationError
			if assert.True(t, errors.As(err, &vErr)) {
				assert.Equal(t, tt.wantField, vErr.Field)
			}
		})
	}
}
