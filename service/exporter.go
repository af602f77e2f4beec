package service

import (
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/BerniceZTT/leadgen_end/models"
)

// leadExportHeaders 导出列头，CSV与工作簿共用
var leadExportHeaders = []string{
	"公司名称", "网站", "简介", "联系人", "职位", "邮箱", "电话",
	"状态", "优先级", "备注", "最近联系时间", "创建时间",
}

// leadExportRow 单条线索的导出行
func leadExportRow(lead models.Lead) []string {
	lastContacted := ""
	if lead.LastContactedAt != nil {
		lastContacted = lead.LastContactedAt.Format(time.RFC3339)
	}
	return []string{
		lead.CompanyName,
		lead.Website,
		lead.Description,
		lead.ContactName,
		lead.ContactTitle,
		lead.Email,
		lead.Phone,
		string(lead.Status),
		string(lead.Priority),
		lead.Notes,
		lastContacted,
		lead.CreatedAt.Format(time.RFC3339),
	}
}

// ExportLeadsCSV 将线索集合写出为CSV
func ExportLeadsCSV(w io.Writer, leads []models.Lead) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(leadExportHeaders); err != nil {
		return fmt.Errorf("写入CSV头失败: %w", err)
	}

	for _, lead := range leads {
		if err := writer.Write(leadExportRow(lead)); err != nil {
			return fmt.Errorf("写入CSV行失败: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportLeadsWorkbook 将线索集合写出为SpreadsheetML工作簿（Excel可直接打开）
func ExportLeadsWorkbook(w io.Writer, leads []models.Lead) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	if _, err := io.WriteString(w,
		`<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet"`+
			` xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet">`+"\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `<Worksheet ss:Name="Leads"><Table>`+"\n"); err != nil {
		return err
	}

	if err := writeWorkbookRow(w, leadExportHeaders); err != nil {
		return err
	}
	for _, lead := range leads {
		if err := writeWorkbookRow(w, leadExportRow(lead)); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</Table></Worksheet></Workbook>\n")
	return err
}

// writeWorkbookRow 写出一行工作簿单元格
func writeWorkbookRow(w io.Writer, cells []string) error {
	if _, err := io.WriteString(w, "<Row>"); err != nil {
		return err
	}
	for _, cell := range cells {
		if _, err := io.WriteString(w, `<Cell><Data ss:Type="String">`); err != nil {
			return err
		}
		if err := xml.EscapeText(w, []byte(cell)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</Data></Cell>"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</Row>\n")
	return err
}
