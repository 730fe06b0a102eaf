package payroll

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// PayslipDocument is everything printed on a payslip.
type PayslipDocument struct {
	Payslip  *Payslip
	Employee *PayrollEmployee
}

type Renderer interface {
	Render(doc PayslipDocument) ([]byte, error)
}

type gofpdfRenderer struct {
	currency     string
	uncompressed bool
}

func NewPDFRenderer(currency string) Renderer {
	if currency == "" {
		currency = "CDF"
	}
	return &gofpdfRenderer{currency: currency}
}

// Render prints the header, then the lines in their stored order, then the totals.
func (r *gofpdfRenderer) Render(doc PayslipDocument) ([]byte, error) {
	p := doc.Payslip

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!r.uncompressed)
	// core fonts are cp1252; element and employee names arrive as UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if doc.Employee != nil {
		pdf.Cell(0, 7, tr(fmt.Sprintf("Employee: %s (%s)", doc.Employee.FullName(), doc.Employee.Matricule)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s", p.PeriodKey))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Zone: %s", p.Zone))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Base salary: %s %s", p.BaseSalary.StringFixed(2), r.currency))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(110, 7, "Description", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Type", "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range p.Lines {
		pdf.CellFormat(110, 6, tr(line.Description), "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, line.Kind, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, line.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	for _, total := range []struct {
		label  string
		amount string
	}{
		{"Gross", p.Gross.StringFixed(2)},
		{"Total deductions", p.TotalDeductions.StringFixed(2)},
		{"Net", p.Net.StringFixed(2)},
	} {
		pdf.CellFormat(140, 7, total.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%s %s", total.amount, r.currency), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileStore writes rendered documents under a base directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Save(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func payslipFileName(p *Payslip) string {
	return filepath.Join("payslips", p.PeriodKey, p.ID.String()+".pdf")
}
