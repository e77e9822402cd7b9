package x11

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestEncodeCardinals(t *testing.T) {
	got := encodeCardinals([]uint32{1, 0x01020304})
	want := []byte{
		0x01, 0x00, 0x00, 0x00,
		0x04, 0x03, 0x02, 0x01,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("encodeCardinals() = %v, want %v", got, want)
	}
}

func TestEncodeCardinalsEmpty(t *testing.T) {
	if got := encodeCardinals(nil); len(got) != 0 {
		t.Errorf("encodeCardinals(nil) = %v, want empty", got)
	}
}

func TestDecodeAtoms(t *testing.T) {
	raw := encodeCardinals([]uint32{107, 108, 110})
	got := decodeAtoms(raw)
	want := []xproto.Atom{107, 108, 110}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("decodeAtoms() = %v, want %v", got, want)
	}
}

func TestDecodeAtomsIgnoresTrailingPartialWord(t *testing.T) {
	raw := append(encodeCardinals([]uint32{42}), 0xff, 0xff)
	got := decodeAtoms(raw)
	if len(got) != 1 || got[0] != 42 {
		t.Errorf("decodeAtoms() = %v, want [42]", got)
	}
}

func TestCardinalAtomRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 0xffffffff, 12345}
	atoms := decodeAtoms(encodeCardinals(values))
	for i, v := range values {
		if uint32(atoms[i]) != v {
			t.Errorf("round trip [%d] = %d, want %d", i, atoms[i], v)
		}
	}
}
