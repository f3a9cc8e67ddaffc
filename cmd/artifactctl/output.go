package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Velocidex/ordereddict"
	"github.com/olekukonko/tablewriter"

	"github.com/joshuapare/artifactkit/pkg/wintime"
)

// writeRows prints rows as a JSON array or a text table. Every row must
// carry the same keys in the same order.
func writeRows(w io.Writer, rows []*ordereddict.Dict) error {
	if jsonOut {
		if rows == nil {
			rows = []*ordereddict.Dict{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	if len(rows) == 0 {
		return nil
	}

	headers := rows[0].Keys()
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	for _, row := range rows {
		cells := make([]string, len(headers))
		for i, h := range headers {
			v, _ := row.Get(h)
			cells[i] = cell(v)
		}
		table.Append(cells)
	}
	table.Render()
	return nil
}

func cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// timestamp renders Unix seconds as RFC 3339, or "" when unset.
func timestamp(sec int64) string {
	if sec == wintime.Unset {
		return ""
	}
	return wintime.UnixToTime(sec).Format(time.RFC3339)
}
