// Package sqlcraft provides composable values that render SQL statements.
//
// # Overview
//
// Rather than concatenating SQL strings, callers construct typed fragments
// (columns, operators, functions, conditions), compose them into clauses
// (FROM, WHERE, GROUP BY, ...) and compose clauses into statements (SELECT,
// INSERT, UPDATE, DELETE, UNION/INTERSECT/EXCEPT). Every value implements
// Expr, whose SQL method renders the fragment.
//
// The package is write-only: it renders SQL text and never parses it,
// connects to a database or executes anything.
//
// # Validation
//
// All validation happens when a value is constructed or assigned.
// Constructors return (value, error) and setters return error; SQL never
// fails and has no side effects, so rendering the same value twice yields
// the same text. Errors wrap one of the sentinel errors:
//
//   - ErrInvalidArgument: blank names, empty required lists, unknown enum values
//   - ErrTypeMismatch: a sub-query where a table is required, a nil operand
//   - ErrOverflow: a third operand added to a Condition
//   - ErrUnresolved: a table's defined columns requested before they are set
//
// Use Must for fragments known to be valid at compile time.
//
// # Expressions
//
//	Col("name")                           // name
//	Literal("42"), Literal("bob")         // 42, 'bob'
//	Must(Eq("age", "18"))                 // age = 18
//	Must(Between("age", "18", "30"))      // age BETWEEN 18 AND 30
//	Must(In("id", List{"1", "2"}))        // id IN (1, 2)
//	Must(NotLike("name", "a%"))           // name NOT LIKE 'a%'
//	Must(Avg("price", Distinct))          // AVG(DISTINCT price)
//	CountAll()                            // COUNT(*)
//	Must(And(p1, p2))                     // (p1 AND p2)
//
// # Statements
//
//	users := Must(NewTable("users"))
//	sel := Must(NewSelect(Must(NewFrom(users)), Cols("id", "name")...))
//	if err := sel.SetWhere(Must(NewWhere(Must(Gt("age", "18"))))); err != nil {
//		return err
//	}
//	sel.SQL() // SELECT id, name FROM users WHERE age > 18
//
// Statements render on a single line with single spaces between clauses.
// Unset optional clauses are omitted entirely.
//
// # Concurrency
//
// Values are plain mutable aggregates without internal locking. Rendering
// is safe to call concurrently on a value nobody mutates; concurrent
// mutation of a shared value requires external synchronization.
package sqlcraft
