package sqlcheck

import (
	"github.com/pingcap/tidb/parser"
	"github.com/pingcap/tidb/parser/mysql"
	_ "github.com/pingcap/tidb/parser/test_driver"
)

// TiDB checks statements against the TiDB MySQL-compatible grammar.
// It understands PARTITION selection, INTERSECT and EXCEPT, but not
// UPDATE ... FROM.
type TiDB struct {
	ansiQuotes bool
}

// NewTiDB creates a TiDB checker. With ansiQuotes, double-quoted tokens are
// identifiers rather than strings.
func NewTiDB(ansiQuotes bool) *TiDB {
	return &TiDB{ansiQuotes: ansiQuotes}
}

func (*TiDB) Name() string { return ParserTiDB }

// Check parses sql with a fresh parser; parsers are not safe for
// concurrent use.
func (c *TiDB) Check(sql string) error {
	p := parser.New()
	if c.ansiQuotes {
		p.SetSQLMode(mysql.ModeANSIQuotes)
	}
	stmts, _, err := p.Parse(sql, "", "")
	if err != nil {
		return syntaxErr(ParserTiDB, sql, err)
	}
	if len(stmts) != 1 {
		return statementCountErr(ParserTiDB, sql, len(stmts))
	}
	return nil
}
