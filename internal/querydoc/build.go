package querydoc

import (
	"fmt"
	"io"
	"strings"

	"github.com/pthm/sqlcraft"
)

// Options controls how documents are turned into statements.
type Options struct {
	// QuoteIdentifiers renders table, column and alias names as
	// double-quoted identifiers. Raw SQL is never rewritten.
	QuoteIdentifiers bool
}

// Built pairs a document label with its statement.
type Built struct {
	Label     string
	Statement sqlcraft.Statement
}

// Load parses r and builds every document in it.
func Load(r io.Reader, opts Options) ([]Built, error) {
	docs, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return BuildAll(docs, opts)
}

// BuildAll builds docs in order, stopping at the first failure.
func BuildAll(docs []*Document, opts Options) ([]Built, error) {
	out := make([]Built, 0, len(docs))
	for i, d := range docs {
		stmt, err := d.Build(opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Label(i), err)
		}
		out = append(out, Built{Label: d.Label(i), Statement: stmt})
	}
	return out, nil
}

// Build translates the document into a statement. Structural problems wrap
// ErrDocument; values rejected by sqlcraft keep their sqlcraft sentinel.
// Both are prefixed with the path of the offending node.
func (d *Document) Build(opts Options) (sqlcraft.Statement, error) {
	b := builder{opts: opts}

	var (
		stmt sqlcraft.Statement
		err  error
		set  int
	)
	if d.Select != nil {
		set++
		stmt, err = b.selectStmt("select", d.Select)
	}
	if d.Insert != nil {
		set++
		stmt, err = b.insertStmt("insert", d.Insert)
	}
	if d.Update != nil {
		set++
		stmt, err = b.updateStmt("update", d.Update)
	}
	if d.Delete != nil {
		set++
		stmt, err = b.deleteStmt("delete", d.Delete)
	}
	if d.Union != nil {
		set++
		stmt, err = b.setOp("union", d.Union, sqlcraft.Union)
	}
	if d.Intersect != nil {
		set++
		stmt, err = b.setOp("intersect", d.Intersect, sqlcraft.Intersect)
	}
	if d.Except != nil {
		set++
		stmt, err = b.setOp("except", d.Except, sqlcraft.Except)
	}

	switch {
	case set == 0:
		return nil, fmt.Errorf("%w: no statement key", ErrDocument)
	case set > 1:
		return nil, fmt.Errorf("%w: %d statement keys, want exactly one", ErrDocument, set)
	case err != nil:
		return nil, err
	}
	return stmt, nil
}

type builder struct {
	opts Options
}

func docErr(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrDocument, path, fmt.Sprintf(format, args...))
}

func at(path string, err error) error {
	return fmt.Errorf("%s: %w", path, err)
}

// ident renders a possibly dotted name, quoting each part when configured.
func (b builder) ident(name string) string {
	if !b.opts.QuoteIdentifiers || name == "" || name == "*" {
		return name
	}
	return sqlcraft.QuoteIdent(strings.Split(name, ".")...)
}

func (b builder) idents(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = b.ident(n)
	}
	return out
}

// =============================================================================
// Statements
// =============================================================================

func (b builder) selectStmt(path string, doc *SelectDoc) (*sqlcraft.Select, error) {
	if doc.From == nil {
		return nil, docErr(path, "from is required")
	}
	src, err := b.source(path+".from", doc.From)
	if err != nil {
		return nil, err
	}
	from, err := sqlcraft.NewFrom(src)
	if err != nil {
		return nil, at(path+".from", err)
	}

	cols := make([]sqlcraft.Expr, 0, len(doc.Columns))
	for i, c := range doc.Columns {
		col, err := b.column(fmt.Sprintf("%s.columns[%d]", path, i), c)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}

	sel, err := sqlcraft.NewSelect(from, cols...)
	if err != nil {
		return nil, at(path+".columns", err)
	}
	sel.SetDistinct(doc.Distinct)

	for i, j := range doc.Joins {
		join, err := b.join(fmt.Sprintf("%s.joins[%d]", path, i), j)
		if err != nil {
			return nil, err
		}
		if err := sel.AddJoin(join); err != nil {
			return nil, at(fmt.Sprintf("%s.joins[%d]", path, i), err)
		}
	}

	if doc.Where != nil {
		w, err := b.where(path+".where", doc.Where)
		if err != nil {
			return nil, err
		}
		if err := sel.SetWhere(w); err != nil {
			return nil, at(path+".where", err)
		}
	}

	if len(doc.GroupBy) > 0 {
		g, err := sqlcraft.NewGroupBy(sqlcraft.Cols(b.idents(doc.GroupBy)...)...)
		if err != nil {
			return nil, at(path+".group_by", err)
		}
		if doc.Having != nil {
			p, err := b.predicate(path+".having", doc.Having)
			if err != nil {
				return nil, err
			}
			if err := g.SetHaving(p); err != nil {
				return nil, at(path+".having", err)
			}
		}
		if err := sel.SetGroupBy(g); err != nil {
			return nil, at(path+".group_by", err)
		}
	} else if doc.Having != nil {
		return nil, docErr(path+".having", "having requires group_by")
	}

	if len(doc.OrderBy) > 0 {
		items := make([]*sqlcraft.Ordering, len(doc.OrderBy))
		for i, entry := range doc.OrderBy {
			o, err := b.ordering(fmt.Sprintf("%s.order_by[%d]", path, i), entry)
			if err != nil {
				return nil, err
			}
			items[i] = o
		}
		o, err := sqlcraft.NewOrderBy(items...)
		if err != nil {
			return nil, at(path+".order_by", err)
		}
		if err := sel.SetOrderBy(o); err != nil {
			return nil, at(path+".order_by", err)
		}
	}

	if doc.Limit != 0 || doc.Offset != 0 {
		l, err := sqlcraft.NewLimit(doc.Limit, doc.Offset)
		if err != nil {
			return nil, at(path+".limit", err)
		}
		sel.SetLimit(l)
	}
	return sel, nil
}

func (b builder) insertStmt(path string, doc *InsertDoc) (*sqlcraft.Insert, error) {
	if doc.Into == nil {
		return nil, docErr(path, "into is required")
	}
	table, err := b.table(path+".into", doc.Into)
	if err != nil {
		return nil, err
	}
	into, err := sqlcraft.NewInto(table, b.idents(doc.Columns)...)
	if err != nil {
		return nil, at(path+".columns", err)
	}

	var src sqlcraft.InsertSource
	switch {
	case len(doc.Values) > 0 && doc.Select != nil:
		return nil, docErr(path, "values and select are mutually exclusive")
	case len(doc.Values) > 0:
		v, err := sqlcraft.NewValues(doc.Values...)
		if err != nil {
			return nil, at(path+".values", err)
		}
		src = v
	case doc.Select != nil:
		s, err := b.selectStmt(path+".select", doc.Select)
		if err != nil {
			return nil, err
		}
		src = s
	default:
		return nil, docErr(path, "values or select is required")
	}

	ins, err := sqlcraft.NewInsert(into, src)
	if err != nil {
		return nil, at(path, err)
	}
	return ins, nil
}

func (b builder) updateStmt(path string, doc *UpdateDoc) (*sqlcraft.Update, error) {
	if doc.Table == nil {
		return nil, docErr(path, "table is required")
	}
	target, err := b.source(path+".table", doc.Table)
	if err != nil {
		return nil, err
	}

	assignments := make([]sqlcraft.Assignment, len(doc.Set))
	for i, a := range doc.Set {
		assignments[i] = sqlcraft.Assign(b.ident(a.Column), a.Value)
	}
	set, err := sqlcraft.NewSet(assignments...)
	if err != nil {
		return nil, at(path+".set", err)
	}

	upd, err := sqlcraft.NewUpdate(target, set)
	if err != nil {
		return nil, at(path+".table", err)
	}
	if doc.From != nil {
		src, err := b.source(path+".from", doc.From)
		if err != nil {
			return nil, err
		}
		from, err := sqlcraft.NewFrom(src)
		if err != nil {
			return nil, at(path+".from", err)
		}
		upd.SetFrom(from)
	}
	if doc.Where != nil {
		w, err := b.where(path+".where", doc.Where)
		if err != nil {
			return nil, err
		}
		upd.SetWhere(w)
	}
	return upd, nil
}

func (b builder) deleteStmt(path string, doc *DeleteDoc) (*sqlcraft.Delete, error) {
	if doc.From == nil {
		return nil, docErr(path, "from is required")
	}
	src, err := b.source(path+".from", doc.From)
	if err != nil {
		return nil, err
	}
	from, err := sqlcraft.NewFrom(src)
	if err != nil {
		return nil, at(path+".from", err)
	}
	del, err := sqlcraft.NewDelete(from)
	if err != nil {
		return nil, at(path+".from", err)
	}
	if doc.Where != nil {
		w, err := b.where(path+".where", doc.Where)
		if err != nil {
			return nil, err
		}
		del.SetWhere(w)
	}
	return del, nil
}

type setOpFunc func(first, second *sqlcraft.Select, all bool) (*sqlcraft.SetOperation, error)

func (b builder) setOp(path string, doc *SetOpDoc, op setOpFunc) (*sqlcraft.SetOperation, error) {
	if doc.First == nil || doc.Second == nil {
		return nil, docErr(path, "first and second are required")
	}
	first, err := b.selectStmt(path+".first", doc.First)
	if err != nil {
		return nil, err
	}
	second, err := b.selectStmt(path+".second", doc.Second)
	if err != nil {
		return nil, err
	}
	s, err := op(first, second, doc.All)
	if err != nil {
		return nil, at(path, err)
	}
	return s, nil
}

// =============================================================================
// Sources, columns and joins
// =============================================================================

func (b builder) source(path string, doc *SourceDoc) (sqlcraft.Source, error) {
	if doc.Select == nil {
		return b.table(path, doc)
	}
	if doc.Table != "" || len(doc.Columns) > 0 || len(doc.Partition) > 0 {
		return nil, docErr(path, "select cannot be combined with table, columns or partition")
	}
	sel, err := b.selectStmt(path+".select", doc.Select)
	if err != nil {
		return nil, err
	}
	if doc.Alias == "" {
		return sel, nil
	}
	sub, err := sqlcraft.NewSubquery(sel, b.ident(doc.Alias))
	if err != nil {
		return nil, at(path, err)
	}
	return sub, nil
}

func (b builder) table(path string, doc *SourceDoc) (*sqlcraft.Table, error) {
	if doc.Select != nil {
		return nil, docErr(path, "a table is required here, not a select")
	}
	t, err := sqlcraft.NewTable(b.ident(doc.Table), b.idents(doc.Columns)...)
	if err != nil {
		return nil, at(path, err)
	}
	if doc.Alias != "" {
		t.SetAlias(b.ident(doc.Alias))
	}
	if len(doc.Partition) > 0 {
		p, err := sqlcraft.NewPartition(doc.Partition...)
		if err != nil {
			return nil, at(path+".partition", err)
		}
		t.SetPartition(p)
	}
	return t, nil
}

func (b builder) column(path string, doc ColumnDoc) (sqlcraft.Expr, error) {
	var expr sqlcraft.Expr
	switch {
	case doc.Raw != "":
		if doc.Func != "" || doc.Column != "" {
			return nil, docErr(path, "raw cannot be combined with func or column")
		}
		expr = sqlcraft.Raw(doc.Raw)
	case doc.Func != "":
		fn, err := b.function(path, doc)
		if err != nil {
			return nil, err
		}
		expr = fn
	case doc.Column != "":
		if doc.Distinct {
			return nil, docErr(path, "distinct requires func")
		}
		expr = sqlcraft.Col(b.ident(doc.Column))
	default:
		return nil, docErr(path, "column, func or raw is required")
	}

	if doc.As == "" {
		return expr, nil
	}
	alias, err := sqlcraft.As(expr, b.ident(doc.As))
	if err != nil {
		return nil, at(path, err)
	}
	return alias, nil
}

func (b builder) function(path string, doc ColumnDoc) (sqlcraft.Expr, error) {
	filter := sqlcraft.All
	if doc.Distinct {
		filter = sqlcraft.Distinct
	}
	column := b.ident(doc.Column)

	var (
		fn  sqlcraft.Expr
		err error
	)
	switch strings.ToLower(doc.Func) {
	case "count":
		if column == "*" && !doc.Distinct {
			return sqlcraft.CountAll(), nil
		}
		fn, err = sqlcraft.Count(column, filter)
	case "avg":
		fn, err = sqlcraft.Avg(column, filter)
	case "sum":
		fn, err = sqlcraft.Sum(column, filter)
	case "min", "max":
		if doc.Distinct {
			return nil, docErr(path, "%s does not accept distinct", doc.Func)
		}
		if strings.EqualFold(doc.Func, "min") {
			fn, err = sqlcraft.Min(column)
		} else {
			fn, err = sqlcraft.Max(column)
		}
	default:
		if doc.Distinct {
			return nil, docErr(path, "%s does not accept distinct", doc.Func)
		}
		fn, err = sqlcraft.Scalar(doc.Func, column)
	}
	if err != nil {
		return nil, at(path, err)
	}
	return fn, nil
}

var joinKinds = map[string]sqlcraft.JoinKind{
	"":      sqlcraft.InnerJoin,
	"inner": sqlcraft.InnerJoin,
	"left":  sqlcraft.LeftJoin,
	"right": sqlcraft.RightJoin,
	"cross": sqlcraft.CrossJoin,
}

func (b builder) join(path string, doc JoinDoc) (*sqlcraft.Join, error) {
	kind, ok := joinKinds[strings.ToLower(doc.Type)]
	if !ok {
		return nil, docErr(path+".type", "unknown join type %q", doc.Type)
	}
	if doc.Source == nil {
		return nil, docErr(path, "source is required")
	}
	src, err := b.source(path+".source", doc.Source)
	if err != nil {
		return nil, err
	}

	var on sqlcraft.Predicate
	if doc.On != nil {
		if on, err = b.predicate(path+".on", doc.On); err != nil {
			return nil, err
		}
	}
	j, err := sqlcraft.NewJoin(kind, src, on)
	if err != nil {
		return nil, at(path, err)
	}
	return j, nil
}

// ordering parses "column" or "column asc|desc".
func (b builder) ordering(path, entry string) (*sqlcraft.Ordering, error) {
	fields := strings.Fields(entry)
	dir := sqlcraft.Ascending
	switch {
	case len(fields) == 2 && strings.EqualFold(fields[1], "asc"):
	case len(fields) == 2 && strings.EqualFold(fields[1], "desc"):
		dir = sqlcraft.Descending
	case len(fields) == 1:
	default:
		return nil, docErr(path, "want \"column\" or \"column asc|desc\", got %q", entry)
	}
	o, err := sqlcraft.Order(sqlcraft.Col(b.ident(fields[0])), dir)
	if err != nil {
		return nil, at(path, err)
	}
	return o, nil
}

// =============================================================================
// Predicates
// =============================================================================

func (b builder) where(path string, doc *Predicate) (*sqlcraft.Where, error) {
	p, err := b.predicate(path, doc)
	if err != nil {
		return nil, err
	}
	w, err := sqlcraft.NewWhere(p)
	if err != nil {
		return nil, at(path, err)
	}
	return w, nil
}

func (b builder) predicate(path string, doc *Predicate) (sqlcraft.Predicate, error) {
	if n := doc.kinds(); n != 1 {
		return nil, docErr(path, "want exactly one of and, or, compare, between, in, like, raw; got %d", n)
	}

	switch {
	case doc.And != nil:
		return b.condition(path+".and", sqlcraft.LogicAnd, doc.And)
	case doc.Or != nil:
		return b.condition(path+".or", sqlcraft.LogicOr, doc.Or)
	case doc.Compare != nil:
		return b.compare(path+".compare", doc.Compare)
	case doc.Between != nil:
		c := doc.Between
		op, err := sqlcraft.Between(b.ident(c.Column), c.From, c.To)
		if err != nil {
			return nil, at(path+".between", err)
		}
		op.SetNegated(c.Not)
		return op, nil
	case doc.In != nil:
		return b.in(path+".in", doc.In)
	case doc.Like != nil:
		c := doc.Like
		op, err := sqlcraft.Like(b.ident(c.Column), c.Pattern)
		if err != nil {
			return nil, at(path+".like", err)
		}
		op.SetNegated(c.Not)
		return op, nil
	default:
		return sqlcraft.Raw(doc.Raw), nil
	}
}

func (p *Predicate) kinds() int {
	n := 0
	for _, set := range []bool{
		p.And != nil, p.Or != nil, p.Compare != nil, p.Between != nil,
		p.In != nil, p.Like != nil, p.Raw != "",
	} {
		if set {
			n++
		}
	}
	return n
}

// condition adds operands one by one so that a third operand surfaces as
// sqlcraft.ErrOverflow at its own path.
func (b builder) condition(path string, logic sqlcraft.Logic, operands []Predicate) (*sqlcraft.Condition, error) {
	c, err := sqlcraft.NewCondition(logic)
	if err != nil {
		return nil, at(path, err)
	}
	for i := range operands {
		opPath := fmt.Sprintf("%s[%d]", path, i)
		p, err := b.predicate(opPath, &operands[i])
		if err != nil {
			return nil, err
		}
		if err := c.Add(p); err != nil {
			return nil, at(opPath, err)
		}
	}
	return c, nil
}

var signs = map[string]sqlcraft.Sign{
	"=":   sqlcraft.Equal,
	"eq":  sqlcraft.Equal,
	"<>":  sqlcraft.NotEqual,
	"!=":  sqlcraft.NotEqual,
	"ne":  sqlcraft.NotEqual,
	">":   sqlcraft.Greater,
	"gt":  sqlcraft.Greater,
	">=":  sqlcraft.GreaterOrEqual,
	"gte": sqlcraft.GreaterOrEqual,
	"<":   sqlcraft.Less,
	"lt":  sqlcraft.Less,
	"<=":  sqlcraft.LessOrEqual,
	"lte": sqlcraft.LessOrEqual,
}

func (b builder) compare(path string, doc *CompareDoc) (*sqlcraft.Comparison, error) {
	op := doc.Op
	if op == "" {
		op = "="
	}
	sign, ok := signs[strings.ToLower(op)]
	if !ok {
		return nil, docErr(path+".op", "unknown operator %q", doc.Op)
	}

	var (
		c   *sqlcraft.Comparison
		err error
	)
	switch {
	case doc.Ref != "" && doc.Value != "":
		return nil, docErr(path, "value and ref are mutually exclusive")
	case doc.Ref != "":
		c, err = sqlcraft.CompareCol(b.ident(doc.Column), sign, b.ident(doc.Ref))
	default:
		c, err = sqlcraft.Compare(b.ident(doc.Column), sign, doc.Value)
	}
	if err != nil {
		return nil, at(path, err)
	}
	return c, nil
}

func (b builder) in(path string, doc *InDoc) (*sqlcraft.InOp, error) {
	var needles []sqlcraft.Needle
	if doc.Values != nil {
		needles = append(needles, sqlcraft.List(doc.Values))
	}
	if doc.Select != nil {
		sel, err := b.selectStmt(path+".select", doc.Select)
		if err != nil {
			return nil, err
		}
		needles = append(needles, sqlcraft.SubQuery{Query: sel})
	}
	if doc.Raw != "" {
		needles = append(needles, sqlcraft.RawNeedle(doc.Raw))
	}
	if len(needles) != 1 {
		return nil, docErr(path, "want exactly one of values, select, raw; got %d", len(needles))
	}

	op, err := sqlcraft.In(b.ident(doc.Column), needles[0])
	if err != nil {
		return nil, at(path, err)
	}
	op.SetNegated(doc.Not)
	return op, nil
}
