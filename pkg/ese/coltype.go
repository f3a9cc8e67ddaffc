package ese

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnType is a JET_coltyp code.
type ColumnType uint32

const (
	ColumnTypeNull        ColumnType = 0
	ColumnTypeBool        ColumnType = 1
	ColumnTypeUInt8       ColumnType = 2
	ColumnTypeInt16       ColumnType = 3
	ColumnTypeInt32       ColumnType = 4
	ColumnTypeCurrency    ColumnType = 5
	ColumnTypeFloat32     ColumnType = 6
	ColumnTypeFloat64     ColumnType = 7
	ColumnTypeDateTime    ColumnType = 8
	ColumnTypeBinary      ColumnType = 9
	ColumnTypeText        ColumnType = 10
	ColumnTypeLargeBinary ColumnType = 11
	ColumnTypeLargeText   ColumnType = 12
	ColumnTypeSuperLarge  ColumnType = 13
	ColumnTypeUInt32      ColumnType = 14
	ColumnTypeInt64       ColumnType = 15
	ColumnTypeGuid        ColumnType = 16
	ColumnTypeUInt16      ColumnType = 17
)

var columnTypeNames = [...]string{
	ColumnTypeNull:        "Null",
	ColumnTypeBool:        "Bool",
	ColumnTypeUInt8:       "UInt8",
	ColumnTypeInt16:       "Int16",
	ColumnTypeInt32:       "Int32",
	ColumnTypeCurrency:    "Currency",
	ColumnTypeFloat32:     "Float32",
	ColumnTypeFloat64:     "Float64",
	ColumnTypeDateTime:    "DateTime",
	ColumnTypeBinary:      "Binary",
	ColumnTypeText:        "Text",
	ColumnTypeLargeBinary: "LargeBinary",
	ColumnTypeLargeText:   "LargeText",
	ColumnTypeSuperLarge:  "SuperLarge",
	ColumnTypeUInt32:      "UInt32",
	ColumnTypeInt64:       "Int64",
	ColumnTypeGuid:        "Guid",
	ColumnTypeUInt16:      "UInt16",
}

// jetAliases are the JET_coltyp spellings used by esentutl and most ESE
// dumpers.
var jetAliases = map[string]ColumnType{
	"nil":           ColumnTypeNull,
	"bit":           ColumnTypeBool,
	"unsignedbyte":  ColumnTypeUInt8,
	"short":         ColumnTypeInt16,
	"long":          ColumnTypeInt32,
	"ieeesingle":    ColumnTypeFloat32,
	"ieeedouble":    ColumnTypeFloat64,
	"longbinary":    ColumnTypeLargeBinary,
	"longtext":      ColumnTypeLargeText,
	"slv":           ColumnTypeSuperLarge,
	"unsignedlong":  ColumnTypeUInt32,
	"longlong":      ColumnTypeInt64,
	"unsignedshort": ColumnTypeUInt16,
}

func (t ColumnType) String() string {
	if int(t) < len(columnTypeNames) {
		return columnTypeNames[t]
	}
	return fmt.Sprintf("ColumnType(%d)", uint32(t))
}

// Known reports whether t is one of the defined codes.
func (t ColumnType) Known() bool { return int(t) < len(columnTypeNames) }

// ParseColumnType resolves a type name, a JET_coltyp spelling or a decimal
// code. Matching is case-insensitive.
func ParseColumnType(name string) (ColumnType, error) {
	s := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "jet_coltyp")
	for i, n := range columnTypeNames {
		if strings.ToLower(n) == s {
			return ColumnType(i), nil
		}
	}
	if t, ok := jetAliases[s]; ok {
		return t, nil
	}
	if code, err := strconv.ParseUint(s, 10, 32); err == nil {
		return ColumnType(code), nil
	}
	return 0, fmt.Errorf("ese: unknown column type %q", name)
}
