package sqlcraft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/pthm/sqlcraft"
)

func TestFilteredAggregates(t *testing.T) {
	tests := []struct {
		name string
		ctor func(string, Filter) (*FilteredAggregate, error)
		col  string
		f    Filter
		want string
	}{
		{"avg", Avg, "price", All, "AVG(price)"},
		{"avg distinct", Avg, "price", Distinct, "AVG(DISTINCT price)"},
		{"sum", Sum, "total", All, "SUM(total)"},
		{"sum distinct", Sum, "total", Distinct, "SUM(DISTINCT total)"},
		{"count", Count, "id", All, "COUNT(id)"},
		{"count distinct", Count, "id", Distinct, "COUNT(DISTINCT id)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg, err := tt.ctor(tt.col, tt.f)
			require.NoError(t, err)
			assert.Equal(t, tt.want, agg.SQL())
			assert.Equal(t, tt.f, agg.Filter())
			assert.Equal(t, tt.col, agg.Column())
		})
	}
}

func TestFilteredAggregate_Invalid(t *testing.T) {
	_, err := Avg("", All)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Sum("total", Filter(5))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	agg := Must(Count("id", All))
	assert.ErrorIs(t, agg.SetFilter(Filter(-1)), ErrInvalidArgument)
	assert.Equal(t, All, agg.Filter(), "failed SetFilter keeps the previous filter")
}

func TestCountAll(t *testing.T) {
	c := CountAll()
	assert.Equal(t, "COUNT(*)", c.SQL())
	assert.Equal(t, "COUNT", c.Name())

	require.NoError(t, c.SetFilter(Distinct))
	require.NoError(t, c.SetColumn("email"))
	assert.Equal(t, "COUNT(DISTINCT email)", c.SQL())
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, "MIN(age)", Must(Min("age")).SQL())
	assert.Equal(t, "MAX(age)", Must(Max("age")).SQL())

	_, err := Min(" ")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	m := Must(Max("age"))
	assert.ErrorIs(t, m.SetColumn(""), ErrInvalidArgument)
	assert.Equal(t, "MAX(age)", m.SQL())
}

func TestScalar(t *testing.T) {
	s, err := Scalar("lower", "email")
	require.NoError(t, err)
	assert.Equal(t, "LOWER(email)", s.SQL())
	assert.Equal(t, "LOWER", s.Name())

	_, err = Scalar("", "email")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Scalar("upper", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFilter_String(t *testing.T) {
	assert.Equal(t, "ALL", All.String())
	assert.Equal(t, "DISTINCT", Distinct.String())
	assert.Equal(t, "Filter(9)", Filter(9).String())
}

func TestAggregatesInSelect(t *testing.T) {
	sel := Must(NewSelect(Must(FromTable("orders")),
		Col("status"),
		Must(As(CountAll(), "n")),
		Must(Avg("amount", Distinct)),
	))
	assert.Equal(t, "SELECT status, COUNT(*) AS n, AVG(DISTINCT amount) FROM orders", sel.SQL())
}

var _ Filterable = (*FilteredAggregate)(nil)
