package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidLeadStatus(t *testing.T) {
	for _, s := range []string{"new", "contacted", "qualified", "converted", "lost"} {
		assert.True(t, ValidLeadStatus(s), s)
	}
	assert.False(t, ValidLeadStatus("archived"))
	assert.False(t, ValidLeadStatus("New"))
}

func TestValidLeadPriority(t *testing.T) {
	for _, p := range []string{"low", "medium", "high"} {
		assert.True(t, ValidLeadPriority(p), p)
	}
	assert.False(t, ValidLeadPriority("urgent"))
}

func TestLeadFieldEditable(t *testing.T) {
	assert.True(t, LeadFieldEditable("companyName"))
	assert.True(t, LeadFieldEditable("notes"))

	// 系统字段不可内联编辑
	assert.False(t, LeadFieldEditable("userId"))
	assert.False(t, LeadFieldEditable("createdAt"))
	assert.False(t, LeadFieldEditable("importId"))
}

func TestContentFieldEditable(t *testing.T) {
	assert.True(t, ContentFieldEditable("articles", "title"))
	assert.True(t, ContentFieldEditable("newsletters", "subject"))
	assert.True(t, ContentFieldEditable("socialPosts", "platform"))

	assert.False(t, ContentFieldEditable("articles", "isApproved"))
	assert.False(t, ContentFieldEditable("newsletters", "sentAt"))
	assert.False(t, ContentFieldEditable("unknown", "title"))
}

func TestLeadImportUpdateRequestToColumnPatch(t *testing.T) {
	name := "补录批次"
	count := 42

	req := LeadImportUpdateRequest{
		Name:      &name,
		LeadCount: &count,
	}

	patch := req.ToColumnPatch()
	assert.Equal(t, map[string]interface{}{
		"name":      "补录批次",
		"leadCount": 42,
	}, patch)

	// 空补丁
	empty := LeadImportUpdateRequest{}
	assert.Empty(t, empty.ToColumnPatch())
}
