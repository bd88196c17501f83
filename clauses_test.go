package sqlcraft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/pthm/sqlcraft"
)

func TestFrom(t *testing.T) {
	f, err := FromTable("users")
	require.NoError(t, err)
	assert.Equal(t, "FROM users", f.SQL())

	_, err = FromTable("")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewFrom(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var nilTable *Table
	_, err = NewFrom(nilTable)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var unset *From
	assert.Equal(t, "", unset.SQL())
}

func TestFrom_Sources(t *testing.T) {
	users := Must(NewTable("users"))
	users.SetAlias("u")
	assert.Equal(t, "FROM users AS u", Must(NewFrom(users)).SQL())

	inner := Must(NewSelect(Must(FromTable("orders")), Col("user_id")))
	assert.Equal(t, "FROM (SELECT user_id FROM orders)", Must(NewFrom(inner)).SQL())

	sub := Must(NewSubquery(inner, "o"))
	assert.Equal(t, "FROM (SELECT user_id FROM orders) AS o", Must(NewFrom(sub)).SQL())
}

func TestTable(t *testing.T) {
	tbl, err := NewTable("users", "id", "name")
	require.NoError(t, err)

	name, err := tbl.Name()
	require.NoError(t, err)
	assert.Equal(t, "users", name)

	cols, err := tbl.DefinedColumns()
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, cols)
	assert.True(t, tbl.HasColumn("id"))
	assert.False(t, tbl.HasColumn("email"))

	bare := Must(NewTable("events"))
	_, err = bare.DefinedColumns()
	assert.ErrorIs(t, err, ErrUnresolved)

	var zero Table
	_, err = zero.Name()
	assert.ErrorIs(t, err, ErrUnresolved)

	_, err = NewTable("users", "id", "id")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewTable("users", "id", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, bare.DefineColumns(), ErrInvalidArgument)
}

func TestInto(t *testing.T) {
	tbl := Must(NewTable("users", "id", "name", "email"))

	t.Run("explicit columns", func(t *testing.T) {
		into, err := NewInto(tbl, "id", "name")
		require.NoError(t, err)
		assert.Equal(t, "INTO users (id, name)", into.SQL())
	})

	t.Run("defaults to defined columns", func(t *testing.T) {
		into := Must(NewInto(tbl))
		assert.Equal(t, "INTO users (id, name, email)", into.SQL())
		assert.Equal(t, []string{"id", "name", "email"}, into.Columns())
	})

	t.Run("no columns at all", func(t *testing.T) {
		into := Must(NewInto(Must(NewTable("logs"))))
		assert.Equal(t, "INTO logs", into.SQL())
	})

	t.Run("alias is not rendered", func(t *testing.T) {
		aliased := Must(NewTable("users"))
		aliased.SetAlias("u")
		assert.Equal(t, "INTO users (id)", Must(NewInto(aliased, "id")).SQL())
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := NewInto(tbl, "id", "age")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("nil table", func(t *testing.T) {
		_, err := NewInto(nil, "id")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestSet(t *testing.T) {
	s, err := NewSet(Assign("name", "bob"), Assign("age", "30"))
	require.NoError(t, err)
	assert.Equal(t, "SET name = 'bob', age = 30", s.SQL())

	require.NoError(t, s.Add("note", "it's"))
	assert.Equal(t, "SET name = 'bob', age = 30, note = 'it''s'", s.SQL())

	assert.ErrorIs(t, s.Add("name", "alice"), ErrInvalidArgument)
	assert.ErrorIs(t, s.Add("", "x"), ErrInvalidArgument)
	assert.Len(t, s.Assignments(), 3)

	cleared := Must(NewSet(Assign("note", "")))
	assert.Equal(t, "SET note = ''", cleared.SQL())

	_, err = NewSet()
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWhere(t *testing.T) {
	w, err := NewWhere(Must(Gt("age", "18")))
	require.NoError(t, err)
	assert.Equal(t, "WHERE age > 18", w.SQL())

	_, err = NewWhere(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewWhere(Raw(" "))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var unset *Where
	assert.Equal(t, "", unset.SQL())
}

func TestGroupBy(t *testing.T) {
	g, err := NewGroupBy(Cols("country", "city")...)
	require.NoError(t, err)
	assert.Equal(t, "GROUP BY country, city", g.SQL())

	require.NoError(t, g.SetHaving(Must(Gt("COUNT(*)", "10"))))
	assert.Equal(t, "GROUP BY country, city HAVING COUNT(*) > 10", g.SQL())

	require.NoError(t, g.SetHaving(nil))
	assert.Equal(t, "GROUP BY country, city", g.SQL())

	_, err = NewGroupBy()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewGroupBy(Col("a"), Col(""))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOrderBy(t *testing.T) {
	o, err := NewOrderBy(Must(Asc("name")), Must(Desc("age")))
	require.NoError(t, err)
	assert.Equal(t, "ORDER BY name ASC, age DESC", o.SQL())

	_, err = NewOrderBy()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewOrderBy(Must(Asc("name")), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLimit(t *testing.T) {
	assert.Equal(t, "LIMIT 10", Must(NewLimit(10, 0)).SQL())
	assert.Equal(t, "LIMIT 10 OFFSET 20", Must(NewLimit(10, 20)).SQL())

	_, err := NewLimit(0, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewLimit(5, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPartition(t *testing.T) {
	p, err := NewPartition("a", "b")
	require.NoError(t, err)
	assert.Equal(t, "PARTITION (a, b)", p.SQL())
	assert.Equal(t, []string{"a", "b"}, p.Names())

	tests := []struct {
		name  string
		names []string
	}{
		{"empty list", nil},
		{"empty entry", []string{"a", ""}},
		{"blank entry", []string{" ", "b"}},
		{"duplicate", []string{"a", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPartition(tt.names...)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestPartition_OnTable(t *testing.T) {
	tbl := Must(NewTable("sales"))
	tbl.SetPartition(Must(NewPartition("p0", "p1")))
	tbl.SetAlias("s")
	assert.Equal(t, "sales PARTITION (p0, p1) AS s", tbl.SQL())

	sel := Must(NewSelect(Must(NewFrom(tbl))))
	assert.Equal(t, "SELECT * FROM sales PARTITION (p0, p1) AS s", sel.SQL())

	tbl.SetPartition(nil)
	assert.Equal(t, "sales AS s", tbl.SQL())
}

func TestJoin(t *testing.T) {
	orders := Must(NewTable("orders"))
	orders.SetAlias("o")
	on := Must(CompareCol("u.id", Equal, "o.user_id"))

	tests := []struct {
		kind JoinKind
		want string
	}{
		{InnerJoin, "INNER JOIN orders AS o ON u.id = o.user_id"},
		{LeftJoin, "LEFT JOIN orders AS o ON u.id = o.user_id"},
		{RightJoin, "RIGHT JOIN orders AS o ON u.id = o.user_id"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.Keyword(), func(t *testing.T) {
			j, err := NewJoin(tt.kind, orders, on)
			require.NoError(t, err)
			assert.Equal(t, tt.want, j.SQL())
		})
	}

	t.Run("cross", func(t *testing.T) {
		j, err := NewJoin(CrossJoin, orders, nil)
		require.NoError(t, err)
		assert.Equal(t, "CROSS JOIN orders AS o", j.SQL())

		_, err = NewJoin(CrossJoin, orders, on)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := NewJoin(InnerJoin, orders, nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = NewJoin(InnerJoin, nil, on)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = NewJoin(JoinKind(0), orders, on)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}
