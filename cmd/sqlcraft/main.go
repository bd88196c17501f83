// Command sqlcraft renders YAML query documents to SQL.
//
// Commands:
//   - render: print the SQL for every document
//   - check: build and syntax-check every document, reporting each result
//   - init: write a starter sqlcraft.yaml
//   - config show: print the effective configuration
//
// Usage:
//
//	sqlcraft [flags] <command>
package main

func main() {
	Execute()
}
