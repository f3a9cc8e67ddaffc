package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Velocidex/ordereddict"
	"github.com/spf13/cobra"

	"github.com/joshuapare/artifactkit/pkg/wintime"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "time <filetime|ole> <value>",
		Short: "Convert a FILETIME or OLE Automation date to UTC",
		Long: `The time command converts a raw Windows timestamp.

Example:
  artifactctl time filetime 132539328000000000
  artifactctl time filetime 0x1d6dfd10c358000
  artifactctl time ole 44197.5`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"filetime", "ole"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTime(cmd.OutOrStdout(), args[0], args[1])
		},
	})
}

func runTime(w io.Writer, kind, value string) error {
	var (
		sec int64
		err error
	)
	switch kind {
	case "filetime":
		var ft uint64
		ft, err = strconv.ParseUint(value, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid FILETIME %q: %w", value, err)
		}
		sec, err = wintime.FiletimeToUnixChecked(ft)
	case "ole":
		var d float64
		d, err = strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid OLE date %q: %w", value, err)
		}
		sec, err = wintime.OLEDateValueToUnix(d)
	default:
		return fmt.Errorf("unknown timestamp kind %q (want filetime or ole)", kind)
	}
	if err != nil {
		return err
	}

	utc := ""
	if sec != wintime.Unset || kind == "ole" {
		utc = time.Unix(sec, 0).UTC().Format(time.RFC3339)
	}
	return writeRows(w, []*ordereddict.Dict{ordereddict.NewDict().
		Set("Input", value).
		Set("Unix", sec).
		Set("UTC", utc)})
}
