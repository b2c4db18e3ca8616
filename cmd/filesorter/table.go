package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type column struct {
	title string
	align text.Align
	// wrap caps the column width; zero leaves it unbounded so paths stay whole.
	wrap int
}

var (
	categoryColumns = []column{
		{title: "#", align: text.AlignRight},
		{title: "Category", align: text.AlignLeft},
		{title: "Extensions", align: text.AlignLeft, wrap: 60},
	}
	historyColumns = []column{
		{title: "Started", align: text.AlignLeft},
		{title: "Source", align: text.AlignLeft},
		{title: "Destination", align: text.AlignLeft},
		{title: "Moved", align: text.AlignRight},
		{title: "Skipped", align: text.AlignRight},
		{title: "Failed", align: text.AlignRight},
		{title: "Status", align: text.AlignLeft},
		{title: "Duration", align: text.AlignRight},
	}
	doctorColumns = []column{
		{title: "Check", align: text.AlignLeft},
		{title: "Status", align: text.AlignLeft},
		{title: "Detail", align: text.AlignLeft},
	}
)

// renderTable draws rows under the given columns. Short rows are padded and
// extra cells dropped. A non-nil footer is printed below the rows.
func renderTable(columns []column, rows [][]string, footer []string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(fitRow(columns, columnTitles(columns)))
	for _, row := range rows {
		tw.AppendRow(fitRow(columns, row))
	}
	if footer != nil {
		tw.AppendFooter(fitRow(columns, footer))
	}

	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, col := range columns {
		configs = append(configs, table.ColumnConfig{
			Number:           i + 1,
			Align:            col.align,
			AlignFooter:      col.align,
			AlignHeader:      text.AlignLeft,
			WidthMax:         col.wrap,
			WidthMaxEnforcer: text.WrapSoft,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func columnTitles(columns []column) []string {
	titles := make([]string, len(columns))
	for i, col := range columns {
		titles[i] = col.title
	}
	return titles
}

func fitRow(columns []column, cells []string) table.Row {
	row := make(table.Row, len(columns))
	for i := range columns {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}
