package sqlcraft

import "fmt"

// Update represents "UPDATE table SET ... [FROM ...] [WHERE ...]".
type Update struct {
	table *Table
	set   *Set
	from  *From
	where *Where
}

// NewUpdate creates an UPDATE statement. The target must be a table.
func NewUpdate(target Source, set *Set) (*Update, error) {
	u := &Update{}
	if err := u.SetTarget(target); err != nil {
		return nil, err
	}
	if err := u.SetSet(set); err != nil {
		return nil, err
	}
	return u, nil
}

// SetTarget replaces the updated table. Sub-queries are rejected with
// ErrTypeMismatch.
func (u *Update) SetTarget(target Source) error {
	if isNil(target) {
		return fmt.Errorf("%w: UPDATE target must not be nil", ErrInvalidArgument)
	}
	t, ok := target.(*Table)
	if !ok {
		return fmt.Errorf("%w: UPDATE target must be a table, got %T", ErrTypeMismatch, target)
	}
	u.table = t
	return nil
}

// SetSet replaces the SET clause, which is mandatory.
func (u *Update) SetSet(set *Set) error {
	if set == nil {
		return fmt.Errorf("%w: UPDATE requires a SET clause", ErrInvalidArgument)
	}
	u.set = set
	return nil
}

// SetFrom sets the optional FROM clause; nil removes it.
func (u *Update) SetFrom(from *From) { u.from = from }

// SetWhere sets the WHERE clause; nil removes it.
func (u *Update) SetWhere(w *Where) { u.where = w }

func (u *Update) Table() *Table { return u.table }
func (u *Update) Set() *Set     { return u.set }
func (u *Update) From() *From   { return u.from }
func (u *Update) Where() *Where { return u.where }

func (u *Update) SQL() string {
	return joinClauses("UPDATE", u.table.ref(), u.set.SQL(), u.from.SQL(), u.where.SQL())
}

func (*Update) statement() {}
