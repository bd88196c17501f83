package sqlcheck

import "github.com/xwb1989/sqlparser"

// Vitess checks statements against the Vitess MySQL grammar. It is stricter
// than TiDB: only UNION is supported among set operations.
type Vitess struct{}

func NewVitess() *Vitess { return &Vitess{} }

func (*Vitess) Name() string { return ParserVitess }

func (*Vitess) Check(sql string) error {
	if _, err := sqlparser.Parse(sql); err != nil {
		return syntaxErr(ParserVitess, sql, err)
	}
	return nil
}
