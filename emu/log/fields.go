package log

import (
	"fmt"
	"strconv"
)

type fieldKind uint8

const (
	kindBool fieldKind = iota + 1
	kindString
	kindHex
	kindInt
	kindUint
	kindError
	kindStringer
)

// zfield is a key/value pair whose formatting is deferred until the entry is
// actually written.
type zfield struct {
	key   string
	kind  fieldKind
	width uint8 // hex digits
	str   string
	num   uint64
	iface any // error or fmt.Stringer
}

func (f *zfield) value() string {
	switch f.kind {
	case kindBool:
		return strconv.FormatBool(f.num != 0)
	case kindString:
		return f.str
	case kindHex:
		return hexString(f.num, int(f.width))
	case kindInt:
		return strconv.FormatInt(int64(f.num), 10)
	case kindUint:
		return strconv.FormatUint(f.num, 10)
	case kindError:
		if f.iface == nil {
			return "<nil>"
		}
		return f.iface.(error).Error()
	case kindStringer:
		return f.iface.(fmt.Stringer).String()
	}
	return ""
}

const hexDigits = "0123456789ABCDEF"

// hexString formats v in uppercase hex, zero-padded to width digits.
func hexString(v uint64, width int) string {
	var buf [16]byte
	for i := width - 1; i >= 0; i-- {
		buf[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return string(buf[:width])
}
