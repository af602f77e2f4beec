package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLeadPayloadNestedArray(t *testing.T) {
	payload := `[["Acme","acme.com","Desc","Jane","jane@acme.com","555-1111","note"],` +
		`["Beta","beta.io","B2B","Bob","bob@beta.io","555-2222",""]]`

	leads, err := ParseLeadPayload(payload)
	require.NoError(t, err)
	require.Len(t, leads, 2)

	assert.Equal(t, "Acme", leads[0].CompanyName)
	assert.Equal(t, "acme.com", leads[0].Website)
	assert.Equal(t, "Desc", leads[0].Description)
	assert.Equal(t, "Jane", leads[0].ContactName)
	assert.Equal(t, "jane@acme.com", leads[0].Email)
	assert.Equal(t, "555-1111", leads[0].Phone)
	assert.Equal(t, "note", leads[0].Notes)
	assert.Equal(t, "Beta", leads[1].CompanyName)
}

func TestParseLeadPayloadFlatArrayIsSingleLead(t *testing.T) {
	payload := `["Acme","acme.com","Desc","Jane","jane@acme.com","555-1111","note"]`

	leads, err := ParseLeadPayload(payload)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Acme", leads[0].CompanyName)
}

func TestParseLeadPayloadStripsSurroundingText(t *testing.T) {
	payload := "以下是本次抓取结果：\n" +
		`[["Acme","acme.com","","","","",""]]` + "\n完毕。"

	leads, err := ParseLeadPayload(payload)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Acme", leads[0].CompanyName)
}

func TestParseLeadPayloadDropsEmptyCompanyName(t *testing.T) {
	payload := `[["","no-name.com","","","","",""],` +
		`["Acme","acme.com","","","","",""]]`

	leads, err := ParseLeadPayload(payload)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Acme", leads[0].CompanyName)
}

func TestParseLeadPayloadAllInvalid(t *testing.T) {
	leads, err := ParseLeadPayload(`[["  ","x","","","","",""]]`)
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestParseLeadPayloadNoArray(t *testing.T) {
	_, err := ParseLeadPayload("这里没有任何数据")
	assert.Error(t, err)
}

func TestImportFailsWithoutValidLeads(t *testing.T) {
	// 全部条目缺公司名时整体导入失败，且不触达数据库
	payload := `[["","acme.com","Desc","Jane","jane@acme.com","555-1111","note"]]`

	_, err := ImportLeadsFromWebhook(context.Background(), "user-1", "", "", payload)
	require.Error(t, err)
	assert.ErrorContains(t, err, "未找到有效的线索数据")
}

func TestParseLeadPayloadShortRowAndNonString(t *testing.T) {
	// 缺位补空串，数字值按字符串取用
	payload := `[["Acme",123]]`

	leads, err := ParseLeadPayload(payload)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Acme", leads[0].CompanyName)
	assert.Equal(t, "123", leads[0].Website)
	assert.Equal(t, "", leads[0].Notes)
}
