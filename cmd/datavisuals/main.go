// Command datavisuals is the CLI and API server for interactive dataset
// exploration: chart aggregation and hierarchical drill-down over tabular
// data.
package main

import "github.com/SreeTarak2/datavisuals/internal/cli"

func main() {
	cli.Execute()
}
