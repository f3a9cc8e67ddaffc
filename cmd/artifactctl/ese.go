package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/Velocidex/ordereddict"
	"github.com/spf13/cobra"

	"github.com/joshuapare/artifactkit/pkg/ese"
)

var (
	eseType     string
	eseCodepage uint32
)

func init() {
	cmd := &cobra.Command{
		Use:   "ese-cell <hex bytes>",
		Short: "Decode one ESE column value",
		Long: `The ese-cell command decodes the raw bytes of a single ESE column
value, given as hex, according to a column type.

Example:
  artifactctl ese-cell --type LargeText 001848006900
  artifactctl ese-cell --type DateTime 00000000a094e540
  artifactctl ese-cell --type Guid --canonical-guid 33221100554477668899aabbccddeeff`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runESECell(cmd.OutOrStdout(), args[0])
		},
	}
	cmd.Flags().StringVarP(&eseType, "type", "t", "LargeText", "Column type name or JET_coltyp code")
	cmd.Flags().Uint32Var(&eseCodepage, "codepage", 0, "Text column codepage (1252 for Windows-1252)")
	rootCmd.AddCommand(cmd)
}

func runESECell(w io.Writer, hexStr string) error {
	typ, err := ese.ParseColumnType(eseType)
	if err != nil {
		return err
	}
	raw, err := hex.DecodeString(strings.Join(strings.Fields(hexStr), ""))
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}

	d := ese.Decoder{Options: ese.Options{CanonicalGUID: canonicalGUID}}
	f, err := d.DecodeColumn(ese.Column{Name: "cell", Type: typ, Codepage: eseCodepage}, raw)
	if err != nil {
		return err
	}
	return writeRows(w, []*ordereddict.Dict{ordereddict.NewDict().
		Set("Type", typ.String()).
		Set("Kind", f.Kind().String()).
		Set("Value", f.String())})
}
