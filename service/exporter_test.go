package service

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/BerniceZTT/leadgen_end/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLeads() []models.Lead {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	touched := created.Add(48 * time.Hour)
	return []models.Lead{
		{
			CompanyName:     "Acme Corp",
			Website:         "acme.com",
			ContactName:     "Jane",
			Email:           "jane@acme.com",
			Status:          models.LeadStatusContacted,
			Priority:        models.LeadPriorityHigh,
			Notes:           `含"引号"与,逗号`,
			LastContactedAt: &touched,
			CreatedAt:       created,
		},
		{
			CompanyName: "Beta <&> LLC",
			Status:      models.LeadStatusNew,
			Priority:    models.LeadPriorityLow,
			CreatedAt:   created,
		},
	}
}

func TestExportLeadsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportLeadsCSV(&buf, sampleLeads()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, leadExportHeaders, records[0])
	assert.Equal(t, "Acme Corp", records[1][0])
	assert.Equal(t, "contacted", records[1][7])
	assert.Equal(t, `含"引号"与,逗号`, records[1][9])

	// 缺失的最近联系时间导出为空串
	assert.Equal(t, "", records[2][10])
}

func TestExportLeadsWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportLeadsWorkbook(&buf, sampleLeads()))

	out := buf.String()
	assert.Contains(t, out, `<Worksheet ss:Name="Leads">`)
	assert.Contains(t, out, `<Data ss:Type="String">Acme Corp</Data>`)
	// 特殊字符经XML转义
	assert.Contains(t, out, "Beta &lt;&amp;&gt; LLC")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</Table></Worksheet></Workbook>"))

	// 头行 + 两条数据
	assert.Equal(t, 3, strings.Count(out, "<Row>"))
}
