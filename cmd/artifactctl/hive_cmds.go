package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Velocidex/ordereddict"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshuapare/artifactkit/internal/mmfile"
	"github.com/joshuapare/artifactkit/pkg/hives"
	"github.com/joshuapare/artifactkit/pkg/registry"
)

func init() {
	rootCmd.AddCommand(
		newHiveCmd("sam <SAM hive>", "List local accounts from a SAM hive", runSAM),
		newHiveCmd("bam <SYSTEM hive>", "List BAM program last-run times from a SYSTEM hive", runBAM),
		newHiveCmd("userassist <NTUSER.DAT>", "List UserAssist counters from a user hive", runUserAssist),
		newHiveCmd("shimcache <SYSTEM hive>", "List AppCompatCache entries from a SYSTEM hive", runShimCache),
	)
}

type hiveRunner func(w io.Writer, reg hives.Registry) error

func newHiveCmd(use, short string, run hiveRunner) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHive(args[0], func(reg hives.Registry) error {
				return run(cmd.OutOrStdout(), reg)
			})
		},
	}
}

// withHive maps path, parses it as a hive and passes it to fn.
func withHive(path string, fn func(hives.Registry) error) error {
	logger.Debug("opening hive", zap.String("path", path))
	f, err := mmfile.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open hive: %w", err)
	}
	defer f.Close()

	reg, err := hives.Open(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return fn(reg)
}

// partial decides whether an extraction error ends the command. Missing
// keys do; per-record failures were already logged and are summarised.
func partial(what string, n int, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, hives.ErrKeyNotFound) && n == 0 {
		return err
	}
	logger.Warn("some records could not be decoded",
		zap.String("artifact", what), zap.Int("decoded", n), zap.Error(err))
	return nil
}

func runSAM(w io.Writer, reg hives.Registry) error {
	users, err := hives.Extractor{Logger: logger}.SAMUsers(reg)
	if err = partial("sam", len(users), err); err != nil {
		return err
	}
	return writeRows(w, samRows(users))
}

func samRows(users []registry.UserRecord) []*ordereddict.Dict {
	rows := make([]*ordereddict.Dict, 0, len(users))
	for _, u := range users {
		rows = append(rows, ordereddict.NewDict().
			Set("RID", u.RID).
			Set("UserName", u.UserName).
			Set("FullName", u.FullName).
			Set("Comment", u.Comment).
			Set("ProfilePath", u.ProfilePath).
			Set("LastLogin", timestamp(u.LastLogin)).
			Set("LastFailedLogin", timestamp(u.LastFailedLogin)).
			Set("PasswordReset", timestamp(u.PasswordReset)).
			Set("AccountExpires", timestamp(u.AccountExpires)).
			Set("LoginCount", u.LoginCount).
			Set("FailedLoginCount", u.FailedLoginCount).
			Set("Flags", strings.Join(u.ACBFlags.Names(), "; ")))
	}
	return rows
}

func runBAM(w io.Writer, reg hives.Registry) error {
	entries, err := hives.Extractor{Logger: logger}.BAM(reg)
	if err = partial("bam", len(entries), err); err != nil {
		return err
	}
	return writeRows(w, bamRows(entries))
}

func bamRows(entries []registry.BAMEntry) []*ordereddict.Dict {
	rows := make([]*ordereddict.Dict, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ordereddict.NewDict().
			Set("User", e.UserIdentifier).
			Set("SID", e.SID).
			Set("Program", e.ProgramPath).
			Set("LastRun", timestamp(e.LastRunTime)))
	}
	return rows
}

func runUserAssist(w io.Writer, reg hives.Registry) error {
	records, err := hives.Extractor{Logger: logger}.UserAssist(reg)
	if err = partial("userassist", len(records), err); err != nil {
		return err
	}
	return writeRows(w, userAssistRows(records))
}

func userAssistRows(records []hives.UserAssistRecord) []*ordereddict.Dict {
	rows := make([]*ordereddict.Dict, 0, len(records))
	for _, r := range records {
		rows = append(rows, ordereddict.NewDict().
			Set("Category", r.Category).
			Set("Name", r.Name).
			Set("RunCount", r.RunCount).
			Set("FocusCount", r.FocusCount).
			Set("FocusTime", r.FocusTime.String()).
			Set("LastRun", timestamp(r.LastRun)))
	}
	return rows
}

func runShimCache(w io.Writer, reg hives.Registry) error {
	entries, err := hives.Extractor{Logger: logger}.AppCompatCache(reg)
	if err = partial("shimcache", len(entries), err); err != nil {
		return err
	}
	return writeRows(w, shimCacheRows(entries))
}

func shimCacheRows(entries []registry.AppCompatEntry) []*ordereddict.Dict {
	rows := make([]*ordereddict.Dict, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ordereddict.NewDict().
			Set("Position", e.Position).
			Set("Path", e.Path).
			Set("LastModified", timestamp(e.LastModified)).
			Set("DataSize", e.DataSize))
	}
	return rows
}
