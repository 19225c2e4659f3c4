package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ti99/hw/datamux"
	"ti99/hw/ti99"
)

// runScript executes bus accesses read from r, one per line, and prints read
// results to w. Lines starting with '#' are comments.
//
//	r ADDR             16-bit read
//	w ADDR WORD        16-bit write
//	wb ADDR BYTE       byte write, merged with the other byte of the word
//	tb ADDR            CRU bit read
//	cru ADDR BIT       CRU bit write
//	set NAME VALUE     change a runtime setting (applies at next reset)
//	reset              reset the machine
//
// Addresses and values are hexadecimal.
func runScript(r io.Reader, w io.Writer, m *ti99.Machine) error {
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if err := execLine(w, m, strings.Fields(line)); err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	fmt.Fprintf(w, "cycles: %d\n", m.CPU.Total)
	return nil
}

func execLine(w io.Writer, m *ti99.Machine, args []string) error {
	nargs := map[string]int{
		"r":     1,
		"w":     2,
		"wb":    2,
		"tb":    1,
		"cru":   2,
		"set":   2,
		"reset": 0,
	}
	n, ok := nargs[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", args[0])
	}
	if len(args)-1 != n {
		return fmt.Errorf("%s: want %d arguments, got %d", args[0], n, len(args)-1)
	}

	if args[0] == "reset" {
		return m.Reset()
	}
	if args[0] == "set" {
		v, err := strconv.ParseUint(args[2], 0, 32)
		if err != nil {
			return fmt.Errorf("set: %w", err)
		}
		m.SetSetting(args[1], uint32(v))
		return nil
	}

	hex := make([]uint16, n)
	for i := range hex {
		v, err := parseHex16(args[i+1])
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		hex[i] = v
	}

	switch args[0] {
	case "r":
		fmt.Fprintf(w, ">%04X = %04X\n", hex[0]&^1, m.Mux.Read16(hex[0]))
	case "w":
		m.Mux.Write16(hex[0], hex[1], datamux.WordMask)
	case "wb":
		if hex[1] > 0xFF {
			return fmt.Errorf("wb: byte value out of range: %X", hex[1])
		}
		if hex[0]&1 != 0 {
			m.Mux.Write16(hex[0], hex[1], datamux.LowByte)
		} else {
			m.Mux.Write16(hex[0], hex[1]<<8, datamux.HighByte)
		}
	case "tb":
		fmt.Fprintf(w, "cru >%04X = %d\n", hex[0], m.Mux.ReadCRU(hex[0]))
	case "cru":
		m.Mux.WriteCRU(hex[0], uint8(hex[1]&1))
	}
	return nil
}
