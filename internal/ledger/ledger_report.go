package ledger

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

type PaymentReportRow struct {
	Payment  Payment
	Employee *LedgerEmployee
}

type PaymentsReport struct {
	Title       string
	GeneratedAt time.Time
	Rows        []PaymentReportRow
}

type ReportRenderer interface {
	RenderPayments(report PaymentsReport) ([]byte, error)
}

type gofpdfReportRenderer struct {
	currency     string
	uncompressed bool
}

func NewReportRenderer(currency string) ReportRenderer {
	if currency == "" {
		currency = "CDF"
	}
	return &gofpdfReportRenderer{currency: currency}
}

func (r *gofpdfReportRenderer) RenderPayments(report PaymentsReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!r.uncompressed)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(report.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated "+report.GeneratedAt.Format(time.RFC3339), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 7, "Employee", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Period", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Status", "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	total := decimal.Zero
	for _, row := range report.Rows {
		p := row.Payment
		who := p.EmployeeID.String()
		if row.Employee != nil {
			who = fmt.Sprintf("%s (%s)", row.Employee.FullName(), row.Employee.Matricule)
		}
		pdf.CellFormat(70, 6, tr(who), "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, p.PeriodKey, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, p.PaymentDate.Format(dateLayout), "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, p.Status, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, p.Amount.StringFixed(2), "", 1, "R", false, 0, "")
		if p.Active() {
			total = total.Add(p.Amount)
		}
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(150, 7, "Total (excluding cancelled)", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, fmt.Sprintf("%s %s", total.StringFixed(2), r.currency), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
