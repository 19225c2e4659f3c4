package log

import (
	"fmt"

	"gopkg.in/Sirupsen/logrus.v0"
)

const maxZFields = 16

// EntryZ is a structured log entry built field by field. A nil *EntryZ is
// valid and discards everything, which lets callers chain without checking
// whether the module is enabled.
type EntryZ struct {
	lvl    Level
	mod    Module
	msg    string
	fields [maxZFields]zfield
	n      int
}

func (z *EntryZ) add(f zfield) *EntryZ {
	if z == nil {
		return nil
	}
	if z.n < len(z.fields) {
		z.fields[z.n] = f
		z.n++
	}
	return z
}

func (z *EntryZ) Bool(key string, v bool) *EntryZ {
	f := zfield{key: key, kind: kindBool}
	if v {
		f.num = 1
	}
	return z.add(f)
}

func (z *EntryZ) String(key string, v string) *EntryZ {
	return z.add(zfield{key: key, kind: kindString, str: v})
}

func (z *EntryZ) Hex8(key string, v uint8) *EntryZ {
	return z.add(zfield{key: key, kind: kindHex, width: 2, num: uint64(v)})
}

func (z *EntryZ) Hex16(key string, v uint16) *EntryZ {
	return z.add(zfield{key: key, kind: kindHex, width: 4, num: uint64(v)})
}

func (z *EntryZ) Hex32(key string, v uint32) *EntryZ {
	return z.add(zfield{key: key, kind: kindHex, width: 8, num: uint64(v)})
}

func (z *EntryZ) Int(key string, v int) *EntryZ {
	return z.add(zfield{key: key, kind: kindInt, num: uint64(v)})
}

func (z *EntryZ) Uint(key string, v uint) *EntryZ {
	return z.add(zfield{key: key, kind: kindUint, num: uint64(v)})
}

func (z *EntryZ) Error(key string, err error) *EntryZ {
	return z.add(zfield{key: key, kind: kindError, iface: err})
}

func (z *EntryZ) Stringer(key string, s fmt.Stringer) *EntryZ {
	return z.add(zfield{key: key, kind: kindStringer, iface: s})
}

// End writes the entry.
func (z *EntryZ) End() {
	if z == nil {
		return
	}

	fields := make(logrus.Fields, z.n+1)
	for i := range z.fields[:z.n] {
		fields[z.fields[i].key] = z.fields[i].value()
	}

	e := z.mod.logger().WithFields(fields)
	switch z.lvl {
	case DebugLevel:
		e.Debug(z.msg)
	case InfoLevel:
		e.Info(z.msg)
	case WarnLevel:
		e.Warn(z.msg)
	case ErrorLevel:
		e.Error(z.msg)
	case FatalLevel:
		e.Fatal(z.msg)
	case PanicLevel:
		e.Panic(z.msg)
	}
}
