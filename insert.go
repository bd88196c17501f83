package sqlcraft

import (
	"fmt"
	"strings"
)

// InsertSource is the payload of an INSERT: explicit Values or a Select.
type InsertSource interface {
	Expr
	insertSource()
}

// Values renders "VALUES (1, 'a'), (2, 'b')". Entries render through Literal.
type Values struct {
	rows [][]string
}

// NewValues creates a VALUES list. At least one row is required, rows must
// not be empty and all rows must have the same width.
func NewValues(rows ...[]string) (*Values, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: VALUES requires at least one row", ErrInvalidArgument)
	}
	v := &Values{}
	for _, row := range rows {
		if err := v.AddRow(row...); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// AddRow appends a row.
func (v *Values) AddRow(values ...string) error {
	if len(values) == 0 {
		return fmt.Errorf("%w: VALUES row must not be empty", ErrInvalidArgument)
	}
	if w := v.Width(); w > 0 && w != len(values) {
		return fmt.Errorf("%w: VALUES row has %d entries, want %d", ErrInvalidArgument, len(values), w)
	}
	v.rows = append(v.rows, append([]string(nil), values...))
	return nil
}

// Width returns the number of entries per row, 0 when there are no rows.
func (v *Values) Width() int {
	if len(v.rows) == 0 {
		return 0
	}
	return len(v.rows[0])
}

// Rows returns a copy of the rows.
func (v *Values) Rows() [][]string {
	rows := make([][]string, len(v.rows))
	for i, r := range v.rows {
		rows[i] = append([]string(nil), r...)
	}
	return rows
}

func (v *Values) SQL() string {
	rows := make([]string, len(v.rows))
	for i, row := range v.rows {
		parts := make([]string, len(row))
		for j, value := range row {
			parts[j] = Literal(value)
		}
		rows[i] = "(" + strings.Join(parts, ", ") + ")"
	}
	return "VALUES " + strings.Join(rows, ", ")
}

func (*Values) insertSource() {}

// Insert represents "INSERT INTO table[ (columns)] VALUES ...|SELECT ...".
type Insert struct {
	into   *Into
	source InsertSource
}

// NewInsert creates an INSERT statement.
func NewInsert(into *Into, source InsertSource) (*Insert, error) {
	if into == nil {
		return nil, fmt.Errorf("%w: INSERT requires an INTO clause", ErrInvalidArgument)
	}
	i := &Insert{into: into}
	if err := i.SetSource(source); err != nil {
		return nil, err
	}
	return i, nil
}

// SetSource replaces the inserted payload. Only Values and Select are
// accepted; a nil payload is a type mismatch. Values must match the width of
// the INTO column list when one is known.
func (i *Insert) SetSource(source InsertSource) error {
	if isNil(source) {
		return fmt.Errorf("%w: INSERT payload must be VALUES or SELECT, got nil", ErrTypeMismatch)
	}
	switch src := source.(type) {
	case *Values:
		if cols := i.into.Columns(); len(cols) > 0 && src.Width() != len(cols) {
			return fmt.Errorf("%w: VALUES rows have %d entries for %d INTO columns", ErrInvalidArgument, src.Width(), len(cols))
		}
	case *Select:
	default:
		return fmt.Errorf("%w: INSERT payload must be VALUES or SELECT, got %T", ErrTypeMismatch, source)
	}
	i.source = source
	return nil
}

func (i *Insert) Into() *Into          { return i.into }
func (i *Insert) Source() InsertSource { return i.source }
func (i *Insert) SQL() string          { return "INSERT " + i.into.SQL() + " " + i.source.SQL() }
func (*Insert) statement()             {}
