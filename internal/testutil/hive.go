package testutil

import (
	"encoding/binary"
	"time"
)

// Registry value types used by hive fixtures.
const (
	RegSZ     = 1
	RegBinary = 3
	RegDWORD  = 4
)

// HiveKey describes one key of a synthetic regf hive.
type HiveKey struct {
	Name    string
	Written time.Time
	Values  []HiveValue
	Subkeys []HiveKey
}

// HiveValue is one value under a HiveKey. Four-byte data is stored inline in
// the vk cell as Windows does for DWORDs; anything else gets its own cell.
type HiveValue struct {
	Name string
	Type uint32
	Data []byte
}

// Key returns a HiveKey chain for a backslash-free list of names, with leaf
// holding values. It saves nesting literals for deep paths.
func Key(written time.Time, values []HiveValue, names ...string) HiveKey {
	k := HiveKey{Name: names[len(names)-1], Written: written, Values: values}
	for i := len(names) - 2; i >= 0; i-- {
		k = HiveKey{Name: names[i], Written: written, Subkeys: []HiveKey{k}}
	}
	return k
}

const (
	hiveBaseBlockSize = 0x1000
	hiveBinHeaderSize = 0x20
	hiveBinAlign      = 0x1000
	hiveNoCell        = 0xFFFFFFFF

	nkFixedSize = 0x4C
	vkFixedSize = 0x14

	nkFlagCompName = 0x20
	nkFlagRoot     = 0x04
	vkFlagCompName = 0x01
	vkInlineData   = 0x80000000
)

// Hive builds a minimal regf file whose root key is root. Cells are laid out
// children first in a single hbin; names must be ASCII.
func Hive(root HiveKey) []byte {
	var h hiveWriter
	h.cells = make([]byte, hiveBinHeaderSize)
	rootOff := h.key(root, true)

	size := (len(h.cells) + hiveBinAlign - 1) &^ (hiveBinAlign - 1)
	bin := make([]byte, size)
	copy(bin, h.cells)
	copy(bin[0:4], "hbin")
	binary.LittleEndian.PutUint32(bin[8:], uint32(size))
	// Trailing slack is one free cell.
	if free := size - len(h.cells); free > 0 {
		binary.LittleEndian.PutUint32(bin[len(h.cells):], uint32(free))
	}

	base := make([]byte, hiveBaseBlockSize)
	copy(base[0:4], "regf")
	binary.LittleEndian.PutUint32(base[0x14:], 1) // major
	binary.LittleEndian.PutUint32(base[0x18:], 5) // minor
	binary.LittleEndian.PutUint32(base[0x20:], 1) // format
	binary.LittleEndian.PutUint32(base[0x24:], rootOff)
	binary.LittleEndian.PutUint32(base[0x28:], uint32(size))
	binary.LittleEndian.PutUint32(base[0x2C:], 1) // cluster

	return append(base, bin...)
}

type hiveWriter struct {
	cells []byte
}

// alloc appends an allocated cell and returns its hbin-relative offset.
func (h *hiveWriter) alloc(payload []byte) uint32 {
	off := uint32(len(h.cells))
	size := (4 + len(payload) + 7) &^ 7
	cell := make([]byte, size)
	binary.LittleEndian.PutUint32(cell, uint32(-int32(size)))
	copy(cell[4:], payload)
	h.cells = append(h.cells, cell...)
	return off
}

func (h *hiveWriter) key(k HiveKey, root bool) uint32 {
	subkeys := uint32(hiveNoCell)
	if len(k.Subkeys) > 0 {
		lf := make([]byte, 4+8*len(k.Subkeys))
		copy(lf, "lf")
		binary.LittleEndian.PutUint16(lf[2:], uint16(len(k.Subkeys)))
		for i, sk := range k.Subkeys {
			e := lf[4+8*i:]
			binary.LittleEndian.PutUint32(e, h.key(sk, false))
			copy(e[4:8], sk.Name)
		}
		subkeys = h.alloc(lf)
	}

	values := uint32(hiveNoCell)
	if len(k.Values) > 0 {
		list := make([]byte, 4*len(k.Values))
		for i, v := range k.Values {
			binary.LittleEndian.PutUint32(list[4*i:], h.value(v))
		}
		values = h.alloc(list)
	}

	nk := make([]byte, nkFixedSize+len(k.Name))
	copy(nk, "nk")
	flags := uint16(nkFlagCompName)
	if root {
		flags |= nkFlagRoot
	}
	binary.LittleEndian.PutUint16(nk[0x02:], flags)
	if !k.Written.IsZero() {
		binary.LittleEndian.PutUint64(nk[0x04:], Filetime(k.Written))
	}
	binary.LittleEndian.PutUint32(nk[0x14:], uint32(len(k.Subkeys)))
	binary.LittleEndian.PutUint32(nk[0x1C:], subkeys)
	binary.LittleEndian.PutUint32(nk[0x20:], hiveNoCell)
	binary.LittleEndian.PutUint32(nk[0x24:], uint32(len(k.Values)))
	binary.LittleEndian.PutUint32(nk[0x28:], values)
	binary.LittleEndian.PutUint32(nk[0x2C:], hiveNoCell) // security
	binary.LittleEndian.PutUint32(nk[0x30:], hiveNoCell) // class
	binary.LittleEndian.PutUint16(nk[0x48:], uint16(len(k.Name)))
	copy(nk[nkFixedSize:], k.Name)
	return h.alloc(nk)
}

func (h *hiveWriter) value(v HiveValue) uint32 {
	vk := make([]byte, vkFixedSize+len(v.Name))
	copy(vk, "vk")
	binary.LittleEndian.PutUint16(vk[0x02:], uint16(len(v.Name)))
	if len(v.Data) == 4 {
		binary.LittleEndian.PutUint32(vk[0x04:], 4|vkInlineData)
		copy(vk[0x08:0x0C], v.Data)
	} else {
		binary.LittleEndian.PutUint32(vk[0x04:], uint32(len(v.Data)))
		binary.LittleEndian.PutUint32(vk[0x08:], h.alloc(v.Data))
	}
	binary.LittleEndian.PutUint32(vk[0x0C:], v.Type)
	binary.LittleEndian.PutUint16(vk[0x10:], vkFlagCompName)
	copy(vk[vkFixedSize:], v.Name)
	return h.alloc(vk)
}
