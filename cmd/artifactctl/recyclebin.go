package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Velocidex/ordereddict"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/artifactkit/internal/mmfile"
	"github.com/joshuapare/artifactkit/pkg/recyclebin"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "recyclebin <$I file or directory>...",
		Short: "Decode Recycle Bin $I records",
		Long: `The recyclebin command decodes $I metadata files. Directories are
searched (non-recursively) for files whose name starts with $I.

Example:
  artifactctl recyclebin '$Recycle.Bin/S-1-5-21-...-1001'
  artifactctl recyclebin '$IABC123.docx' --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecycleBin(cmd.Context(), cmd.OutOrStdout(), args)
		},
	})
}

type recycleResult struct {
	path string
	rec  recyclebin.Record
	err  error
}

func runRecycleBin(ctx context.Context, w io.Writer, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	paths, err := expandRecyclePaths(args)
	if err != nil {
		return err
	}
	logger.Debug("decoding $I records", zap.Int("files", len(paths)), zap.Int("workers", workers))

	results := make([]recycleResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := decodeRecycleFile(p)
			results[i] = recycleResult{path: p, rec: rec, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	rows := make([]*ordereddict.Dict, 0, len(results))
	var errs []error
	for _, r := range results {
		if r.err != nil {
			logger.Warn("skipping record", zap.String("file", r.path), zap.Error(r.err))
			errs = append(errs, r.err)
			continue
		}
		rows = append(rows, ordereddict.NewDict().
			Set("File", filepath.Base(r.path)).
			Set("OriginalPath", r.rec.OriginalPath).
			Set("Size", r.rec.OriginalSize).
			Set("Deleted", timestamp(r.rec.DeletedTime)).
			Set("Version", r.rec.Version))
	}
	if err := writeRows(w, rows); err != nil {
		return err
	}
	if len(rows) == 0 && len(errs) > 0 {
		return fmt.Errorf("no record could be decoded: %w", errors.Join(errs...))
	}
	return nil
}

func decodeRecycleFile(path string) (recyclebin.Record, error) {
	f, err := mmfile.Open(path)
	if err != nil {
		return recyclebin.Record{}, err
	}
	defer f.Close()

	rec, err := recyclebin.DecodeRecord(f.Bytes())
	if err != nil {
		return recyclebin.Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// expandRecyclePaths replaces each directory argument by the $I files it
// contains.
func expandRecyclePaths(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasPrefix(e.Name(), "$I") {
				out = append(out, filepath.Join(arg, e.Name()))
			}
		}
	}
	return out, nil
}
