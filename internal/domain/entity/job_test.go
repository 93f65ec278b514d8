package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJob_ZeroValue(t *testing.T) {
	var job Job

	assert.False(t, job.HasID())
	assert.Equal(t, "", job.Reference)
	assert.Equal(t, "", job.Title)
	assert.Equal(t, "", job.Description)
	assert.Equal(t, "", job.URL)
	assert.Equal(t, "", job.CompanyName)
	assert.Equal(t, "", job.PublishedDate)
}

func TestJob_ToMap(t *testing.T) {
	job := Job{
		ID:            7,
		Reference:     "TEST001",
		Title:         "Développeur PHP Senior (H/F)",
		Description:   "<p>desc</p>",
		URL:           "http://www.regionsjob.com/test/TEST001",
		CompanyName:   "TechCorp",
		PublishedDate: "2024/01/15",
	}

	got := job.ToMap()

	assert.Equal(t, map[string]any{
		"id":           int64(7),
		"reference":    "TEST001",
		"title":        "Développeur PHP Senior (H/F)",
		"description":  "<p>desc</p>",
		"url":          "http://www.regionsjob.com/test/TEST001",
		"company_name": "TechCorp",
		"publication":  "2024/01/15",
	}, got)
}

func TestJob_ToMap_Unpersisted(t *testing.T) {
	got := Job{Reference: "JT001"}.ToMap()

	assert.Nil(t, got["id"])
	assert.Equal(t, "JT001", got["reference"])
	assert.Equal(t, "", got["publication"])
}
