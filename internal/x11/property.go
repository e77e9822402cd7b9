package x11

import (
	"encoding/binary"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

// Property reads are fire-and-forget: the request goes out
// immediately and the continuation runs on its own goroutine when the
// reply arrives. An absent property or a read error drops the
// continuation silently; the window may legally lack any of the
// optional properties the bridge asks for.

const propertyReadLength = 2048 // 32-bit units; plenty for names and protocol lists

// ReadStringProperty reads a text property and hands the decoded
// value to cont. WM_CLASS-style values keep only the first
// NUL-terminated field.
func (c *Connection) ReadStringProperty(win xproto.Window, prop xproto.Atom, cont func(string)) {
	cookie := xproto.GetProperty(c.xu.Conn(), false, win, prop, xproto.GetPropertyTypeAny, 0, propertyReadLength)
	go func() {
		reply, err := cookie.Reply()
		if err != nil || reply == nil || reply.Format == 0 {
			return
		}
		value := string(reply.Value)
		if i := strings.IndexByte(value, 0); i >= 0 {
			value = value[:i]
		}
		cont(value)
	}()
}

// ReadAtomListProperty reads a 32-bit atom-list property and hands
// the decoded list to cont.
func (c *Connection) ReadAtomListProperty(win xproto.Window, prop xproto.Atom, cont func([]xproto.Atom)) {
	cookie := xproto.GetProperty(c.xu.Conn(), false, win, prop, xproto.GetPropertyTypeAny, 0, propertyReadLength)
	go func() {
		reply, err := cookie.Reply()
		if err != nil || reply == nil || reply.Format != 32 {
			return
		}
		cont(decodeAtoms(reply.Value))
	}()
}

// SetTypedProperty replaces a 32-bit property with the given values
// under an explicit property type, e.g. the two-word WM_STATE record
// whose type is the WM_STATE atom itself.
func (c *Connection) SetTypedProperty(win xproto.Window, prop, typ xproto.Atom, values ...uint32) {
	xproto.ChangeProperty(
		c.xu.Conn(),
		xproto.PropModeReplace,
		win, prop, typ,
		32, uint32(len(values)), encodeCardinals(values),
	)
}

// SetCardinal32Property replaces a CARDINAL property.
func (c *Connection) SetCardinal32Property(win xproto.Window, prop xproto.Atom, values ...uint32) {
	c.SetTypedProperty(win, prop, xproto.AtomCardinal, values...)
}

// SetAtomListProperty replaces an ATOM-list property. A nil list
// writes an empty property, not a deletion.
func (c *Connection) SetAtomListProperty(win xproto.Window, prop xproto.Atom, list []xproto.Atom) {
	values := make([]uint32, len(list))
	for i, a := range list {
		values[i] = uint32(a)
	}
	xproto.ChangeProperty(
		c.xu.Conn(),
		xproto.PropModeReplace,
		win, prop, xproto.AtomAtom,
		32, uint32(len(values)), encodeCardinals(values),
	)
}

// DeleteProperty removes a property from a window.
func (c *Connection) DeleteProperty(win xproto.Window, prop xproto.Atom) {
	xproto.DeleteProperty(c.xu.Conn(), win, prop)
}

func encodeCardinals(values []uint32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[4*i:], v)
	}
	return buf
}

func decodeAtoms(raw []byte) []xproto.Atom {
	atoms := make([]xproto.Atom, 0, len(raw)/4)
	for i := 0; i+4 <= len(raw); i += 4 {
		atoms = append(atoms, xproto.Atom(binary.LittleEndian.Uint32(raw[i:])))
	}
	return atoms
}
