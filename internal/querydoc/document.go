// Package querydoc decodes YAML query documents and builds sqlcraft
// statements from them.
//
// A file holds one or more YAML documents separated by "---". Each document
// has exactly one statement key:
//
//	name: adults
//	select:
//	  columns: [id, name, {func: count, column: "*", as: n}]
//	  from: {table: users, alias: u}
//	  where:
//	    and:
//	      - compare: {column: age, op: ">=", value: 18}
//	      - like: {column: name, pattern: "a%", not: true}
//	  group_by: [id, name]
//	  order_by: [name, "n desc"]
//	  limit: 10
//
// The statement keys are select, insert, update, delete, union, intersect
// and except. Predicates are and, or, compare, between, in, like and raw.
package querydoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm/sqlcraft"
)

// ErrDocument is returned when a document is malformed.
var ErrDocument = errors.New("querydoc: invalid document")

// IsDocumentErr returns true if err is or wraps ErrDocument.
func IsDocumentErr(err error) bool {
	return errors.Is(err, ErrDocument)
}

// Document is one query document.
type Document struct {
	// Name is an optional label used in diagnostics.
	Name string `yaml:"name"`

	Select    *SelectDoc `yaml:"select"`
	Insert    *InsertDoc `yaml:"insert"`
	Update    *UpdateDoc `yaml:"update"`
	Delete    *DeleteDoc `yaml:"delete"`
	Union     *SetOpDoc  `yaml:"union"`
	Intersect *SetOpDoc  `yaml:"intersect"`
	Except    *SetOpDoc  `yaml:"except"`
}

// Label returns the document name, or "document N" for unnamed documents.
func (d *Document) Label(index int) string {
	if d.Name != "" {
		return d.Name
	}
	return fmt.Sprintf("document %d", index+1)
}

// SelectDoc describes a SELECT statement.
type SelectDoc struct {
	Distinct bool        `yaml:"distinct"`
	Columns  []ColumnDoc `yaml:"columns"`
	From     *SourceDoc  `yaml:"from"`
	Joins    []JoinDoc   `yaml:"joins"`
	Where    *Predicate  `yaml:"where"`
	GroupBy  []string    `yaml:"group_by"`
	Having   *Predicate  `yaml:"having"`
	OrderBy  []string    `yaml:"order_by"`
	Limit    int         `yaml:"limit"`
	Offset   int         `yaml:"offset"`
}

// InsertDoc describes an INSERT statement. Exactly one of Values and Select
// must be set.
type InsertDoc struct {
	Into    *SourceDoc `yaml:"into"`
	Columns []string   `yaml:"columns"`
	Values  [][]string `yaml:"values"`
	Select  *SelectDoc `yaml:"select"`
}

// UpdateDoc describes an UPDATE statement.
type UpdateDoc struct {
	Table *SourceDoc  `yaml:"table"`
	Set   Assignments `yaml:"set"`
	From  *SourceDoc  `yaml:"from"`
	Where *Predicate  `yaml:"where"`
}

// DeleteDoc describes a DELETE statement.
type DeleteDoc struct {
	From  *SourceDoc `yaml:"from"`
	Where *Predicate `yaml:"where"`
}

// SetOpDoc describes UNION, INTERSECT or EXCEPT over two selects.
type SetOpDoc struct {
	All    bool       `yaml:"all"`
	First  *SelectDoc `yaml:"first"`
	Second *SelectDoc `yaml:"second"`
}

// SourceDoc is a table or a derived table. A plain scalar is shorthand for
// a table name.
type SourceDoc struct {
	Table     string     `yaml:"table"`
	Alias     string     `yaml:"alias"`
	Columns   []string   `yaml:"columns"`
	Partition []string   `yaml:"partition"`
	Select    *SelectDoc `yaml:"select"`
}

func (s *SourceDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Table = node.Value
		return nil
	}
	type plain SourceDoc
	return node.Decode((*plain)(s))
}

// JoinDoc describes one JOIN. Type is inner (default), left, right or cross.
type JoinDoc struct {
	Type   string     `yaml:"type"`
	Source *SourceDoc `yaml:"source"`
	On     *Predicate `yaml:"on"`
}

// ColumnDoc is a select-list entry. A plain scalar is a column name; the
// mapping form selects a function call, raw SQL or an alias.
type ColumnDoc struct {
	Column   string `yaml:"column"`
	Func     string `yaml:"func"`
	Distinct bool   `yaml:"distinct"`
	Raw      string `yaml:"raw"`
	As       string `yaml:"as"`
}

func (c *ColumnDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		c.Column = node.Value
		return nil
	}
	type plain ColumnDoc
	return node.Decode((*plain)(c))
}

// Predicate is a tagged union: exactly one field must be set.
type Predicate struct {
	And     []Predicate `yaml:"and"`
	Or      []Predicate `yaml:"or"`
	Compare *CompareDoc `yaml:"compare"`
	Between *BetweenDoc `yaml:"between"`
	In      *InDoc      `yaml:"in"`
	Like    *LikeDoc    `yaml:"like"`
	Raw     string      `yaml:"raw"`
}

// CompareDoc compares a column against a literal Value or another Ref column.
type CompareDoc struct {
	Column string `yaml:"column"`
	Op     string `yaml:"op"`
	Value  string `yaml:"value"`
	Ref    string `yaml:"ref"`
}

type BetweenDoc struct {
	Column string `yaml:"column"`
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Not    bool   `yaml:"not"`
}

// InDoc searches a literal list, a nested select or raw SQL.
type InDoc struct {
	Column string     `yaml:"column"`
	Values []string   `yaml:"values"`
	Select *SelectDoc `yaml:"select"`
	Raw    string     `yaml:"raw"`
	Not    bool       `yaml:"not"`
}

type LikeDoc struct {
	Column  string `yaml:"column"`
	Pattern string `yaml:"pattern"`
	Not     bool   `yaml:"not"`
}

// Assignments is a SET mapping decoded in document order.
type Assignments []sqlcraft.Assignment

func (a *Assignments) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: set must be a mapping", ErrDocument, node.Line)
	}
	out := make(Assignments, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode || value.ShortTag() == "!!null" {
			return fmt.Errorf("%w: line %d: set.%s must be a scalar value", ErrDocument, value.Line, key.Value)
		}
		out = append(out, sqlcraft.Assign(key.Value, value.Value))
	}
	*a = out
	return nil
}

// Parse decodes every document in r. Unknown keys are rejected.
func Parse(r io.Reader) ([]*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var docs []*Document
	for {
		var d Document
		err := dec.Decode(&d)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if IsDocumentErr(err) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrDocument, err)
		}
		docs = append(docs, &d)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents", ErrDocument)
	}
	return docs, nil
}

// ParseString is Parse over a string.
func ParseString(s string) ([]*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile decodes every document in the named file.
func ParseFile(path string) ([]*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	docs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}
