package payroll_test

import (
	"context"
	"errors"
	"testing"

	"go-payroll/internal/paycalc"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeSource struct {
	employees  map[string]*payroll.PayrollEmployee
	grades     map[string]*payroll.PayrollGrade
	workplaces map[string]*payroll.PayrollWorkplace
	elements   map[string]payroll.PayrollElement

	requestedElements []string
	loads             int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		employees:  map[string]*payroll.PayrollEmployee{},
		grades:     map[string]*payroll.PayrollGrade{},
		workplaces: map[string]*payroll.PayrollWorkplace{},
		elements:   map[string]payroll.PayrollElement{},
	}
}

func (f *fakeSource) FindEmployee(_ context.Context, id string) (*payroll.PayrollEmployee, error) {
	f.loads++
	if e, ok := f.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSource) FindGrade(_ context.Context, id string) (*payroll.PayrollGrade, error) {
	if g, ok := f.grades[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSource) FindWorkplace(_ context.Context, id string) (*payroll.PayrollWorkplace, error) {
	if w, ok := f.workplaces[id]; ok {
		return w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// FindElements returns matches in reverse map order to make sure callers do not rely on row order.
func (f *fakeSource) FindElements(_ context.Context, ids []string) ([]payroll.PayrollElement, error) {
	f.requestedElements = ids
	out := []payroll.PayrollElement{}
	for i := len(ids) - 1; i >= 0; i-- {
		if e, ok := f.elements[ids[i]]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

type fixture struct {
	src        *fakeSource
	employeeID string
	gradeID    uuid.UUID
	rural      uuid.UUID
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func moneyPtr(s string) *decimal.Decimal {
	d := money(s)
	return &d
}

func newFixture(base string, zone string) fixture {
	src := newFakeSource()
	gradeID := uuid.New()
	workplaceID := uuid.New()
	employeeID := uuid.New()

	src.grades[gradeID.String()] = &payroll.PayrollGrade{ID: gradeID, Label: "P1", BaseSalary: money(base)}
	src.workplaces[workplaceID.String()] = &payroll.PayrollWorkplace{ID: workplaceID, Name: "EP Kisanga", Zone: zone}
	src.employees[employeeID.String()] = &payroll.PayrollEmployee{
		ID:          employeeID,
		Matricule:   "MAT-000001",
		FirstName:   "Amani",
		LastName:    "Kabila",
		GradeID:     gradeID,
		WorkplaceID: &workplaceID,
	}
	return fixture{src: src, employeeID: employeeID.String(), gradeID: gradeID, rural: workplaceID}
}

func (f fixture) addElement(name, kind, amount string, zoneSensitive bool) string {
	id := uuid.New()
	e := payroll.PayrollElement{ID: id, Name: name, Kind: kind, ZoneSensitive: zoneSensitive}
	if amount != "" {
		e.Amount = moneyPtr(amount)
	}
	f.src.elements[id.String()] = e
	return id.String()
}

func newBuilder(t *testing.T) *payroll.PayslipBuilder {
	engine, err := paycalc.NewEngine(paycalc.DefaultSettings())
	require.NoError(t, err)
	return payroll.NewPayslipBuilder(engine, zap.NewNop())
}

var march = paycalc.Period{Year: 2024, Month: 3}

func TestPayslipBuilder_Build(t *testing.T) {
	ctx := context.Background()

	t.Run("rural zone sensitive gain", func(t *testing.T) {
		f := newFixture("300000", "RURAL")
		gain := f.addElement("Transport", "GAIN", "1000", true)

		p, b, err := newBuilder(t).Build(ctx, f.src, f.employeeID, march, []string{gain})

		require.NoError(t, err)
		assert.True(t, p.Gross.Equal(money("301200")))
		assert.True(t, p.TotalGains.Equal(money("1200")))
		assert.True(t, p.Contribution.Equal(money("9000")))
		assert.True(t, p.Tax.Equal(money("38242")))
		assert.True(t, p.TotalDeductions.Equal(money("47242")))
		assert.True(t, p.Net.Equal(money("253958")))
		assert.Equal(t, "2024-03", p.PeriodKey)
		assert.Equal(t, payroll.StatusPending, p.Status)
		assert.Equal(t, "RURAL", p.Zone)

		require.Len(t, p.Lines, 3)
		assert.Equal(t, "GAIN", p.Lines[0].Kind)
		assert.Equal(t, "Transport - Zone: RURAL", p.Lines[0].Description)
		assert.Equal(t, gain, p.Lines[0].ElementID.String())
		assert.Equal(t, "CONTRIBUTION", p.Lines[1].Kind)
		assert.Nil(t, p.Lines[1].ElementID)
		assert.Equal(t, "TAX", p.Lines[2].Kind)
		for i, l := range p.Lines {
			assert.Equal(t, i, l.Position)
			assert.Equal(t, p.ID, l.PayslipID)
		}

		assert.Empty(t, b.Warnings)
		assert.True(t, b.AnnualizedGross.Equal(money("3614400")))
		assert.True(t, b.OtherDeductions.IsZero())
	})

	t.Run("invalid period checked before any load", func(t *testing.T) {
		f := newFixture("300000", "URBAN")

		for _, period := range []paycalc.Period{{Year: 2024, Month: 0}, {Year: 2024, Month: 13}, {Year: 1999, Month: 1}} {
			_, _, err := newBuilder(t).Build(ctx, f.src, f.employeeID, period, nil)
			assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
		}
		assert.Equal(t, 0, f.src.loads)
	})

	t.Run("missing employee", func(t *testing.T) {
		f := newFixture("300000", "URBAN")

		_, _, err := newBuilder(t).Build(ctx, f.src, uuid.NewString(), march, nil)

		assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotFound)
	})

	t.Run("missing grade", func(t *testing.T) {
		f := newFixture("300000", "URBAN")
		delete(f.src.grades, f.gradeID.String())

		_, _, err := newBuilder(t).Build(ctx, f.src, f.employeeID, march, nil)

		assert.ErrorIs(t, err, payrollerrors.ErrGradeNotFound)
	})

	t.Run("missing workplace falls back to urban", func(t *testing.T) {
		f := newFixture("300000", "RURAL")
		delete(f.src.workplaces, f.rural.String())
		gain := f.addElement("Transport", "GAIN", "1000", true)

		p, _, err := newBuilder(t).Build(ctx, f.src, f.employeeID, march, []string{gain})

		require.NoError(t, err)
		assert.Equal(t, "URBAN", p.Zone)
		assert.True(t, p.ZoneMultiplier.Equal(money("1")))
		assert.True(t, p.Gross.Equal(money("301000")))
	})

	t.Run("employee without workplace is urban", func(t *testing.T) {
		f := newFixture("300000", "RURAL")
		f.src.employees[f.employeeID].WorkplaceID = nil

		p, _, err := newBuilder(t).Build(ctx, f.src, f.employeeID, march, nil)

		require.NoError(t, err)
		assert.Equal(t, "URBAN", p.Zone)
	})

	t.Run("duplicates collapse and unknown ids are ignored", func(t *testing.T) {
		f := newFixture("300000", "URBAN")
		a := f.addElement("A", "GAIN", "100", false)
		b := f.addElement("B", "GAIN", "200", false)
		d := f.addElement("Union", "DEDUCTION", "50", false)

		p, _, err := newBuilder(t).Build(ctx, f.src, f.employeeID, march,
			[]string{b, uuid.NewString(), a, b, "not-a-uuid", d, a})

		require.NoError(t, err)
		assert.Len(t, f.src.requestedElements, 4)
		require.Len(t, p.Lines, 5)
		assert.Equal(t, "B - Zone: URBAN", p.Lines[0].Description)
		assert.Equal(t, "A - Zone: URBAN", p.Lines[1].Description)
		assert.Equal(t, "CONTRIBUTION", p.Lines[2].Kind)
		assert.Equal(t, "TAX", p.Lines[3].Kind)
		assert.Equal(t, "Union", p.Lines[4].Description)
		assert.True(t, p.TotalGains.Equal(money("300")))
		assert.True(t, p.TotalDeductions.Equal(p.Contribution.Add(p.Tax).Add(money("50"))))
	})

	t.Run("element without amount counts as zero", func(t *testing.T) {
		f := newFixture("300000", "RURAL")
		g := f.addElement("Bonus", "GAIN", "", true)

		p, _, err := newBuilder(t).Build(ctx, f.src, f.employeeID, march, []string{g})

		require.NoError(t, err)
		assert.True(t, p.Lines[0].Amount.IsZero())
		assert.True(t, p.Gross.Equal(money("300000")))
	})

	t.Run("negative net is kept and flagged", func(t *testing.T) {
		f := newFixture("100000", "URBAN")
		d := f.addElement("Loan", "DEDUCTION", "500000", false)

		p, b, err := newBuilder(t).Build(ctx, f.src, f.employeeID, march, []string{d})

		require.NoError(t, err)
		assert.True(t, p.Net.IsNegative())
		assert.True(t, p.Net.Equal(p.Gross.Sub(p.TotalDeductions)))
		assert.Equal(t, []string{paycalc.WarningNegativeNet}, b.Warnings)
	})

	t.Run("zero salary", func(t *testing.T) {
		f := newFixture("0", "URBAN")

		p, _, err := newBuilder(t).Build(ctx, f.src, f.employeeID, march, nil)

		require.NoError(t, err)
		assert.True(t, p.Gross.IsZero())
		assert.True(t, p.Net.IsZero())
		assert.Len(t, p.Lines, 2)
	})
}

type failingSource struct {
	*fakeSource
}

func (failingSource) FindWorkplace(context.Context, string) (*payroll.PayrollWorkplace, error) {
	return nil, errors.New("connection reset")
}

func TestPayslipBuilder_WorkplaceLookupFailure(t *testing.T) {
	f := newFixture("300000", "RURAL")

	_, _, err := newBuilder(t).Build(context.Background(), failingSource{f.src}, f.employeeID, march, nil)

	assert.EqualError(t, err, "connection reset")
}
