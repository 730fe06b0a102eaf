package payroll

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFRenderer_Render(t *testing.T) {
	p := &Payslip{
		ID:              uuid.New(),
		PeriodKey:       "2024-03",
		Zone:            "RURAL",
		BaseSalary:      decimal.NewFromInt(300000),
		Gross:           decimal.NewFromInt(301200),
		TotalDeductions: decimal.NewFromInt(47242),
		Net:             decimal.NewFromInt(253958),
		Lines: []PayslipLine{
			{Kind: "GAIN", Amount: decimal.NewFromInt(1200), Description: "Transport - Zone: RURAL"},
			{Kind: "CONTRIBUTION", Position: 1, Amount: decimal.NewFromInt(9000), Description: "Social contribution (5%)"},
		},
	}

	data, err := NewPDFRenderer("").Render(PayslipDocument{
		Payslip:  p,
		Employee: &PayrollEmployee{FirstName: "Amani", LastName: "Kabila", Matricule: "MAT-000001"},
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestPDFRenderer_Render_TranslatesUTF8(t *testing.T) {
	p := &Payslip{
		ID:        uuid.New(),
		PeriodKey: "2024-03",
		Zone:      "RURAL",
		Lines: []PayslipLine{
			{Kind: "GAIN", Amount: decimal.NewFromInt(1200), Description: "Indemnité de brousse"},
		},
	}
	r := &gofpdfRenderer{currency: "CDF", uncompressed: true}

	data, err := r.Render(PayslipDocument{
		Payslip:  p,
		Employee: &PayrollEmployee{FirstName: "Zoé", LastName: "Mbuyi", Matricule: "MAT-000002"},
	})

	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte("Indemnit\xe9 de brousse")))
	assert.True(t, bytes.Contains(data, []byte("Zo\xe9 Mbuyi")))
	assert.False(t, bytes.Contains(data, []byte("Indemnité")))
}

func TestPayslipFileName(t *testing.T) {
	id := uuid.New()
	name := payslipFileName(&Payslip{ID: id, PeriodKey: "2024-03"})
	assert.Contains(t, name, "2024-03")
	assert.Contains(t, name, id.String()+".pdf")
}
