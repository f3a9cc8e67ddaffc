package hives

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/joshuapare/artifactkit/internal/buf"
	"github.com/joshuapare/artifactkit/pkg/registry"
)

// Key paths, relative to the hive root.
const (
	samUsersPath       = `SAM\Domains\Account\Users`
	selectPath         = `Select`
	defaultControlSet  = `ControlSet001`
	bamStatePath       = `Services\bam\State\UserSettings`
	bamLegacyPath      = `Services\bam\UserSettings`
	appCompatCachePath = `Control\Session Manager\AppCompatCache`
	userAssistPath     = `Software\Microsoft\Windows\CurrentVersion\Explorer\UserAssist`
)

// UserAssistRecord is a UserAssist entry together with the category GUID
// key it was found under.
type UserAssistRecord struct {
	Category string
	registry.UserAssistEntry
}

// Extractor pulls artifacts out of opened hives. The zero value logs
// nowhere.
type Extractor struct {
	Logger *zap.Logger
}

func (e Extractor) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// skip logs a record that could not be decoded and returns err with the
// key path attached.
func (e Extractor) skip(path string, err error) error {
	e.logger().Warn("skipping record", zap.String("key", path), zap.Error(err))
	return fmt.Errorf("%s: %w", path, err)
}

// SAMUsers decodes every local account in a SAM hive.
func (e Extractor) SAMUsers(reg Registry) ([]registry.UserRecord, error) {
	users, err := reg.OpenKey(samUsersPath)
	if err != nil {
		return nil, err
	}

	var (
		out  []registry.UserRecord
		errs []error
	)
	for _, k := range users.Subkeys() {
		if strings.EqualFold(k.Name(), "Names") {
			continue
		}
		path := samUsersPath + `\` + k.Name()
		v, okV := valueData(k, "V")
		f, okF := valueData(k, "F")
		if !okV || !okF {
			errs = append(errs, e.skip(path, errors.New("missing V or F value")))
			continue
		}
		rec, err := registry.DecodeSAMUser(v, f)
		if err != nil {
			errs = append(errs, e.skip(path, err))
			continue
		}
		out = append(out, rec)
	}
	e.logger().Debug("decoded sam users", zap.Int("count", len(out)), zap.Int("skipped", len(errs)))
	return out, errors.Join(errs...)
}

// BAM decodes the Background Activity Moderator entries of every user in a
// SYSTEM hive.
func (e Extractor) BAM(reg Registry) ([]registry.BAMEntry, error) {
	cs := e.currentControlSet(reg)
	base := cs + `\` + bamStatePath
	root, err := reg.OpenKey(base)
	if errors.Is(err, ErrKeyNotFound) {
		base = cs + `\` + bamLegacyPath
		root, err = reg.OpenKey(base)
	}
	if err != nil {
		return nil, err
	}

	var (
		out  []registry.BAMEntry
		errs []error
	)
	for _, k := range root.Subkeys() {
		entries, err := registry.DecodeBAMValues(k.Name(), k.Values())
		if err != nil {
			errs = append(errs, e.skip(base+`\`+k.Name(), err))
		}
		out = append(out, entries...)
	}
	return out, errors.Join(errs...)
}

// UserAssist decodes the UserAssist counters of an NTUSER.DAT hive.
func (e Extractor) UserAssist(reg Registry) ([]UserAssistRecord, error) {
	root, err := reg.OpenKey(userAssistPath)
	if err != nil {
		return nil, err
	}

	var (
		out  []UserAssistRecord
		errs []error
	)
	for _, category := range root.Subkeys() {
		count, ok := subkey(category, "Count")
		if !ok {
			continue
		}
		path := userAssistPath + `\` + category.Name() + `\Count`
		for _, v := range count.Values() {
			if registry.IsUserAssistMetaValue(v.Name) {
				continue
			}
			entry, err := registry.DecodeUserAssist(v.Name, v.Data)
			if err != nil {
				errs = append(errs, e.skip(path, err))
				continue
			}
			out = append(out, UserAssistRecord{Category: category.Name(), UserAssistEntry: entry})
		}
	}
	return out, errors.Join(errs...)
}

// AppCompatCache decodes the shim cache of a SYSTEM hive. Entries read
// before a corrupt one are returned along with the error.
func (e Extractor) AppCompatCache(reg Registry) ([]registry.AppCompatEntry, error) {
	path := e.currentControlSet(reg) + `\` + appCompatCachePath
	k, err := reg.OpenKey(path)
	if err != nil {
		return nil, err
	}
	data, ok := valueData(k, "AppCompatCache")
	if !ok {
		return nil, fmt.Errorf("%s: AppCompatCache value: %w", path, ErrKeyNotFound)
	}
	entries, err := registry.DecodeAppCompatCache(data)
	if err != nil {
		return entries, e.skip(path, err)
	}
	return entries, nil
}

// currentControlSet names the control set Select\Current points at,
// falling back to ControlSet001.
func (e Extractor) currentControlSet(reg Registry) string {
	sel, err := reg.OpenKey(selectPath)
	if err != nil {
		e.logger().Debug("no Select key, using default control set", zap.Error(err))
		return defaultControlSet
	}
	data, _ := valueData(sel, "Current")
	n, ok := buf.U32At(data, 0)
	if !ok || n == 0 || n > 999 {
		e.logger().Debug("unusable Select\\Current, using default control set", zap.Binary("data", data))
		return defaultControlSet
	}
	return fmt.Sprintf("ControlSet%03d", n)
}
