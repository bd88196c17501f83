package sqlcheck

import pg_query "github.com/pganalyze/pg_query_go/v5"

// Postgres checks statements against the PostgreSQL grammar via libpg_query.
// It accepts UPDATE ... FROM and every set operation, but not MySQL
// PARTITION selection.
type Postgres struct{}

func NewPostgres() *Postgres { return &Postgres{} }

func (*Postgres) Name() string { return ParserPostgres }

func (*Postgres) Check(sql string) error {
	tree, err := pg_query.Parse(sql)
	if err != nil {
		return syntaxErr(ParserPostgres, sql, err)
	}
	if n := len(tree.GetStmts()); n != 1 {
		return statementCountErr(ParserPostgres, sql, n)
	}
	return nil
}
