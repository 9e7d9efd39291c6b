package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/SreeTarak2/datavisuals/internal/chart"
	"github.com/SreeTarak2/datavisuals/internal/drill"
	"github.com/SreeTarak2/datavisuals/internal/store"
)

// renderResult writes a chart build result as a table or JSON.
func renderResult(w io.Writer, res chart.Result, format string) error {
	if format == "json" {
		return renderJSON(w, res)
	}

	if len(res.Points) == 0 {
		_, _ = fmt.Fprintln(w, "(no data)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	switch res.Type {
	case chart.TypeScatter:
		t.AppendHeader(table.Row{res.CategoryField, res.ValueField})
		for _, p := range res.Points {
			t.AppendRow(table.Row{p.X, p.Y})
		}
	default:
		label := res.CategoryField
		if label == "" {
			label = res.ValueField
		}
		t.AppendHeader(table.Row{label, "value"})
		for _, p := range res.Points {
			t.AppendRow(table.Row{p.Label, p.Value})
		}
	}
	t.Render()

	if res.Correlation != nil {
		_, _ = fmt.Fprintf(w, "correlation: %.4f\n", *res.Correlation)
	}
	if res.Fabricated {
		_, _ = fmt.Fprintln(w, "(fabricated placeholder data)")
	}
	return nil
}

// renderDatasets writes dataset metadata as a table or JSON.
func renderDatasets(w io.Writer, infos []store.DatasetInfo, format string) error {
	if format == "json" {
		return renderJSON(w, infos)
	}
	if len(infos) == 0 {
		_, _ = fmt.Fprintln(w, "(no datasets)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"id", "name", "columns", "rows", "created"})
	for _, info := range infos {
		t.AppendRow(table.Row{
			info.ID, info.Name,
			strings.Join(info.Columns, ","),
			info.RowCount,
			info.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	t.Render()
	return nil
}

// renderHierarchies writes hierarchy definitions as a table or JSON.
func renderHierarchies(w io.Writer, hierarchies []drill.Hierarchy, format string) error {
	if format == "json" {
		return renderJSON(w, hierarchies)
	}
	if len(hierarchies) == 0 {
		_, _ = fmt.Fprintln(w, "(no hierarchies)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"name", "field", "levels", "drillable"})
	for _, h := range hierarchies {
		levels := make([]string, len(h.Levels))
		for i, lvl := range h.Levels {
			levels[i] = lvl.Field
		}
		t.AppendRow(table.Row{h.Name, h.Field, strings.Join(levels, " > "), h.Drillable})
	}
	t.Render()
	return nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
