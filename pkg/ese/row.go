package ese

import (
	"errors"
	"fmt"

	"github.com/Velocidex/ordereddict"

	"github.com/joshuapare/artifactkit/pkg/types"
)

// DecodeRow decodes one record's cells in catalog order. cells[i] holds
// the raw bytes for cols[i]; a missing trailing cell is treated as empty.
// Values are types.Field. Cells that fail to decode are set to a null
// field and their errors joined.
func (d Decoder) DecodeRow(cols []Column, cells [][]byte) (*ordereddict.Dict, error) {
	row := ordereddict.NewDict()
	var errs []error
	for i, col := range cols {
		var raw []byte
		if i < len(cells) {
			raw = cells[i]
		}
		f, err := d.DecodeColumn(col, raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("column %d: %w", i, err))
			row.Set(col.Name, types.Null())
			continue
		}
		row.Set(col.Name, f)
	}
	return row, errors.Join(errs...)
}
