package sqlcraft

import "fmt"

// Delete represents "DELETE FROM table [WHERE ...]".
type Delete struct {
	from  *From
	where *Where
}

// NewDelete creates a DELETE statement. The FROM source must be a table.
func NewDelete(from *From) (*Delete, error) {
	d := &Delete{}
	if err := d.SetFrom(from); err != nil {
		return nil, err
	}
	return d, nil
}

// SetFrom replaces the FROM clause. Sources other than a table are rejected
// with ErrTypeMismatch.
func (d *Delete) SetFrom(from *From) error {
	if from == nil {
		return fmt.Errorf("%w: DELETE requires a FROM clause", ErrInvalidArgument)
	}
	if _, ok := from.Source().(*Table); !ok {
		return fmt.Errorf("%w: DELETE source must be a table, got %T", ErrTypeMismatch, from.Source())
	}
	d.from = from
	return nil
}

// SetWhere sets the WHERE clause; nil removes it.
func (d *Delete) SetWhere(w *Where) { d.where = w }

func (d *Delete) From() *From   { return d.from }
func (d *Delete) Where() *Where { return d.where }

func (d *Delete) SQL() string {
	return joinClauses("DELETE", d.from.SQL(), d.where.SQL())
}

func (*Delete) statement() {}
