package usecases

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"homequote.backend/internal/domain/entities"
)

const (
	leadSheetName  = "Leads"
	exportPageSize = 500
)

var leadExportHeaders = []string{
	"Lead ID", "Created At", "First Name", "Last Name", "Email", "Phone",
	"Postcode", "Progress Step", "Status", "Enquiry Message", "Survey Date", "Payment Outcome",
}

// ExportLeads renders every lead of the partner into an xlsx workbook.
func (u *LeadUsecase) ExportLeads(ctx context.Context, partnerID uuid.UUID) ([]byte, error) {
	var leads []*entities.PartnerLead
	for offset := 0; ; offset += exportPageSize {
		page, total, err := u.leadRepo.ListByPartner(ctx, partnerID, exportPageSize, offset)
		if err != nil {
			return nil, err
		}
		leads = append(leads, page...)
		if len(page) < exportPageSize || int64(len(leads)) >= total {
			break
		}
	}
	return buildLeadWorkbook(leads)
}

func buildLeadWorkbook(leads []*entities.PartnerLead) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", leadSheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, len(leadExportHeaders))
	for i, h := range leadExportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(leadSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(leadExportHeaders))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(leadSheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, lead := range leads {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := leadRow(lead)
		if err := f.SetSheetRow(leadSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(leadSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func leadRow(lead *entities.PartnerLead) []interface{} {
	doc := lead.FormAnswers
	var message, surveyDate, paymentOutcome string
	if doc.Enquiry != nil {
		message = doc.Enquiry.Message
	}
	if doc.Survey != nil {
		surveyDate = doc.Survey.PreferredDate
	}
	if doc.Payment != nil {
		paymentOutcome = string(doc.Payment.Outcome)
	}
	return []interface{}{
		lead.ID.String(),
		lead.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Phone,
		lead.Postcode,
		string(lead.ProgressStep),
		string(lead.Status),
		strings.TrimSpace(message),
		surveyDate,
		paymentOutcome,
	}
}
