// Package snapshot holds the serializable state of the emulated hardware.
package snapshot

import (
	"encoding/binary"
	"fmt"

	"github.com/go-faster/jx"
)

const Version = 1

// Datamux is the state of the data multiplexer. RAM holds the 16-bit fast
// RAM words in window order.
type Datamux struct {
	Version  int
	Latch    uint8
	LowByte  uint8
	HighByte uint8
	FastRAM  bool
	RAM      []uint16
}

func (d *Datamux) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("version")
	e.Int(d.Version)
	e.FieldStart("latch")
	e.UInt8(d.Latch)
	e.FieldStart("low_byte")
	e.UInt8(d.LowByte)
	e.FieldStart("high_byte")
	e.UInt8(d.HighByte)
	e.FieldStart("fast_ram")
	e.Bool(d.FastRAM)

	buf := make([]byte, 2*len(d.RAM))
	for i, w := range d.RAM {
		binary.BigEndian.PutUint16(buf[2*i:], w)
	}
	e.FieldStart("ram")
	e.Base64(buf)
	e.ObjEnd()
}

func (d *Datamux) Decode(dec *jx.Decoder) error {
	err := dec.Obj(func(dec *jx.Decoder, key string) error {
		var err error
		switch key {
		case "version":
			d.Version, err = dec.Int()
		case "latch":
			d.Latch, err = dec.UInt8()
		case "low_byte":
			d.LowByte, err = dec.UInt8()
		case "high_byte":
			d.HighByte, err = dec.UInt8()
		case "fast_ram":
			d.FastRAM, err = dec.Bool()
		case "ram":
			var buf []byte
			if buf, err = dec.Base64(); err != nil {
				return err
			}
			if len(buf)%2 != 0 {
				return fmt.Errorf("ram: odd byte count %d", len(buf))
			}
			d.RAM = make([]uint16, len(buf)/2)
			for i := range d.RAM {
				d.RAM[i] = binary.BigEndian.Uint16(buf[2*i:])
			}
		default:
			err = dec.Skip()
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("decode datamux snapshot: %w", err)
	}
	if d.Version != Version {
		return fmt.Errorf("decode datamux snapshot: unsupported version %d", d.Version)
	}
	return nil
}

func (d Datamux) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	d.Encode(&e)
	return e.Bytes(), nil
}

func (d *Datamux) UnmarshalJSON(data []byte) error {
	return d.Decode(jx.DecodeBytes(data))
}
