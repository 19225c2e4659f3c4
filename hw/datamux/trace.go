package datamux

import (
	"io"
	"strconv"

	"ti99/emu/log"
)

// tracer writes one line per datamux bus access.
//
//	R 9001 12 speech +3
//	W 8C02 40 vdp +3
//	R 9803 FF open +3
//	r 2000 BEEF fastram
type tracer struct {
	w   io.Writer
	buf []byte
	err error // first write error, tracing stops after it
}

func (t *tracer) write(b []byte) {
	t.buf = b
	if t.err != nil {
		return
	}
	if _, err := t.w.Write(b); err != nil {
		t.err = err
		log.ModMux.ErrorZ("access trace stopped").Error("err", err).End()
	}
}

func hexEncode(dst []byte, v byte) []byte {
	const hextable = "0123456789ABCDEF"
	return append(dst, hextable[v>>4], hextable[v&0x0f])
}

func (t *tracer) access(dir byte, addr uint16, val uint8, reg *Registry, idx []int, ws int) {
	b := append(t.buf[:0], dir, ' ')
	b = hexEncode(b, uint8(addr>>8))
	b = hexEncode(b, uint8(addr))
	b = append(b, ' ')
	b = hexEncode(b, val)
	b = append(b, ' ')
	if len(idx) == 0 {
		b = append(b, "open"...)
	}
	for i, si := range idx {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, reg.slots[si].Name...)
	}
	b = append(b, " +"...)
	b = strconv.AppendInt(b, int64(ws), 10)
	b = append(b, '\n')
	t.write(b)
}

// fast traces a fast RAM access; dir is lowercase to tell it apart.
func (t *tracer) fast(dir byte, addr uint16, val uint16) {
	b := append(t.buf[:0], dir|0x20, ' ')
	b = hexEncode(b, uint8(addr>>8))
	b = hexEncode(b, uint8(addr))
	b = append(b, ' ')
	b = hexEncode(b, uint8(val>>8))
	b = hexEncode(b, uint8(val))
	b = append(b, " fastram\n"...)
	t.write(b)
}
