// ABOUTME: Output helpers printing rendered posts as a table or page markup.
// ABOUTME: Tables use tablewriter with borderless, left-aligned styling.
package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/2389-research/postboard/internal/render"
)

var postHeaders = []string{"ID", "Title", "Content"}

// printPage writes the page's rendered posts to w.
func printPage(w io.Writer, doc *render.Document, asHTML bool) error {
	if asHTML {
		out, err := doc.HTML()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	}
	return writePostTable(w, doc.Blocks())
}

// writePostTable prints one row per block. Blocks without a delete control
// show no id, the same as on the page.
func writePostTable(w io.Writer, blocks []render.Block) error {
	if len(blocks) == 0 {
		_, err := fmt.Fprintln(w, "No posts.")
		return err
	}

	rows := make([][]string, 0, len(blocks))
	for _, b := range blocks {
		id := "-"
		if b.Deletable {
			id = strconv.FormatInt(b.Post.ID, 10)
		}
		rows = append(rows, []string{id, b.Post.Title, b.Post.Content})
	}

	table := newTable(w)
	table.Header(postHeaders)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("failed to build table: %w", err)
	}
	return table.Render()
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNormal,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)
}
