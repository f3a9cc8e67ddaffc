package hives

import (
	"fmt"
	"strings"
	"time"

	"github.com/joshuapare/artifactkit/pkg/registry"
)

// memKey is an in-memory registry key for tests.
type memKey struct {
	name    string
	written time.Time
	subkeys []*memKey
	values  []registry.Value
}

func (k *memKey) Name() string             { return k.name }
func (k *memKey) LastWrite() time.Time     { return k.written }
func (k *memKey) Values() []registry.Value { return k.values }

func (k *memKey) Subkeys() []Key {
	out := make([]Key, len(k.subkeys))
	for i, sk := range k.subkeys {
		out[i] = sk
	}
	return out
}

// add creates (or finds) the key at a backslash path below k.
func (k *memKey) add(path string) *memKey {
	cur := k
	for _, part := range strings.Split(path, `\`) {
		var next *memKey
		for _, sk := range cur.subkeys {
			if strings.EqualFold(sk.name, part) {
				next = sk
				break
			}
		}
		if next == nil {
			next = &memKey{name: part}
			cur.subkeys = append(cur.subkeys, next)
		}
		cur = next
	}
	return cur
}

func (k *memKey) set(name string, data []byte) *memKey {
	k.values = append(k.values, registry.Value{Name: name, Data: data})
	return k
}

type memRegistry struct{ root *memKey }

func newMemRegistry() *memRegistry { return &memRegistry{root: &memKey{name: "ROOT"}} }

func (r *memRegistry) OpenKey(path string) (Key, error) {
	cur := r.root
	for _, part := range strings.FieldsFunc(path, func(c rune) bool { return c == '\\' || c == '/' }) {
		found := false
		for _, sk := range cur.subkeys {
			if strings.EqualFold(sk.name, part) {
				cur, found = sk, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%s: %w", path, ErrKeyNotFound)
		}
	}
	return cur, nil
}
