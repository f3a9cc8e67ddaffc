package hives

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"www.velocidex.com/golang/regparser"

	"github.com/joshuapare/artifactkit/pkg/registry"
)

// ErrKeyNotFound is returned when a key path does not exist in the hive.
var ErrKeyNotFound = errors.New("hives: key not found")

// Registry is an opened hive.
type Registry interface {
	// OpenKey resolves a path relative to the hive root. Components may be
	// separated by "\" or "/".
	OpenKey(path string) (Key, error)
}

// Key is one registry key.
type Key interface {
	Name() string
	LastWrite() time.Time
	Subkeys() []Key
	Values() []registry.Value
}

// Open parses the hive behind r.
func Open(r io.ReaderAt) (Registry, error) {
	reg, err := regparser.NewRegistry(r)
	if err != nil {
		return nil, fmt.Errorf("hives: open: %w", err)
	}
	return &offlineHive{reg: reg}, nil
}

type offlineHive struct {
	reg *regparser.Registry
}

func (h *offlineHive) OpenKey(path string) (Key, error) {
	k := h.reg.OpenKey(path)
	if k == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrKeyNotFound)
	}
	return offlineKey{k}, nil
}

type offlineKey struct {
	key *regparser.CM_KEY_NODE
}

func (k offlineKey) Name() string { return k.key.Name() }

func (k offlineKey) LastWrite() time.Time { return k.key.LastWriteTime().Time }

func (k offlineKey) Subkeys() []Key {
	subkeys := k.key.Subkeys()
	out := make([]Key, 0, len(subkeys))
	for _, sk := range subkeys {
		out = append(out, offlineKey{sk})
	}
	return out
}

func (k offlineKey) Values() []registry.Value {
	values := k.key.Values()
	out := make([]registry.Value, 0, len(values))
	for _, v := range values {
		out = append(out, registry.Value{Name: v.ValueName(), Data: v.ValueData().Data})
	}
	return out
}

// valueData returns the data of the named value. Names compare
// case-insensitively as they do in Windows.
func valueData(k Key, name string) ([]byte, bool) {
	for _, v := range k.Values() {
		if strings.EqualFold(v.Name, name) {
			return v.Data, true
		}
	}
	return nil, false
}

// subkey returns the named child of k.
func subkey(k Key, name string) (Key, bool) {
	for _, sk := range k.Subkeys() {
		if strings.EqualFold(sk.Name(), name) {
			return sk, true
		}
	}
	return nil, false
}
