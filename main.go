package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"text/tabwriter"

	"ti99/emu"
	"ti99/emu/log"
	"ti99/hw/hwio"
	"ti99/hw/mapcheck"
	"ti99/hw/ti99"
)

func main() {
	cli := parseArgs(os.Args[1:])

	if cli.mode == versionMode {
		fmt.Println(version())
		return
	}

	cfg := loadConfig(&cli)
	if cli.mode == configMode {
		buf, err := emu.EncodeConfig(cfg)
		checkf(err, "failed to encode config")
		os.Stdout.Write(buf)
		return
	}

	m, err := ti99.New(cfg.Machine)
	checkf(err, "failed to create machine")
	checkf(m.Reset(), "failed to reset machine")

	switch cli.mode {
	case mapMode:
		printMap(os.Stdout, m)
	case checkMode:
		rep, err := mapcheck.Sweep(context.Background(), m.Mux.Registry())
		checkf(err, "address space sweep failed")
		printReport(os.Stdout, rep)
		if !rep.OK() {
			os.Exit(1)
		}
	case dumpMode:
		dump(os.Stdout, m, uint16(cli.Dump.From), cli.Dump.Words)
	case execMode:
		if cli.Exec.Trace != nil {
			defer cli.Exec.Trace.Close()
			m.Mux.SetTrace(cli.Exec.Trace)
		}
		f, err := os.Open(cli.Exec.Script)
		checkf(err, "failed to open script")
		defer f.Close()
		if err := runScript(f, os.Stdout, m); err != nil {
			log.ModEmu.ErrorZ("script failed").String("path", cli.Exec.Script).Error("err", err).End()
			os.Exit(1)
		}
	case stateMode:
		buf, err := m.Mux.State().MarshalJSON()
		checkf(err, "failed to encode state")
		fmt.Printf("%s\n", buf)
	}
}

func loadConfig(cli *CLI) emu.Config {
	var cfg emu.Config
	if cli.ConfigPath != "" {
		var err error
		cfg, err = emu.LoadConfig(cli.ConfigPath)
		checkf(err, "failed to load config")
	} else {
		cfg = emu.LoadConfigOrDefault()
	}

	overrides, err := cli.settings()
	checkf(err, "invalid --set flag")
	if cfg.Machine.Settings == nil {
		cfg.Machine.Settings = make(map[string]uint32)
	}
	for name, v := range overrides {
		cfg.Machine.Settings[name] = v
	}
	return cfg
}

func version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "ti99mux (devel)"
	}
	return "ti99mux " + bi.Main.Version
}

func printMap(w io.Writer, m *ti99.Machine) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDEVICE\tMASK\tSELECT\tWSELECT\tACCESS")
	for i, s := range m.Mux.Registry().Slots() {
		access := ""
		if s.Read != nil {
			access += "R"
		}
		if s.Write != nil {
			access += "W"
		}
		fmt.Fprintf(tw, "%d\t%s\t%04X\t%04X\t%04X\t%s\n", i, s.Name, s.Mask, s.Select, s.WriteSelect, access)
	}
	tw.Flush()

	if !m.Mux.FastRAM() {
		fmt.Fprintln(w, "\nfast RAM: off")
		return
	}
	fmt.Fprintln(w, "\nfast RAM: on")
	for _, win := range m.Mux.Windows() {
		fmt.Fprintf(w, "  %04X-%04X (%dK)\n", win.Base, int(win.Base)+win.Size-1, win.Size/1024)
	}
}

func printReport(w io.Writer, rep *mapcheck.Report) {
	ranges := func(s *hwio.AddrSet) string {
		var strs []string
		for _, r := range s.Ranges() {
			strs = append(strs, r.String())
		}
		return strings.Join(strs, " ")
	}
	fmt.Fprintf(w, "read decoded:  %5d bytes  %s\n", rep.ReadMapped.Len(), ranges(&rep.ReadMapped))
	fmt.Fprintf(w, "write decoded: %5d bytes  %s\n", rep.WriteMapped.Len(), ranges(&rep.WriteMapped))
	if rep.OK() {
		fmt.Fprintln(w, "no conflicts")
		return
	}
	for _, c := range rep.Conflicts {
		dir := "read"
		if c.Write {
			dir = "write"
		}
		fmt.Fprintf(w, "conflict: %s >%04X (%d addresses): %s\n", dir, c.Addr, c.Count, strings.Join(c.Slots, ", "))
	}
}

// dump prints n words starting at addr, 8 words per line.
func dump(w io.Writer, m *ti99.Machine, addr uint16, n int) {
	addr &^= 1
	var (
		line  strings.Builder
		ascii []byte
	)
	for i := range n {
		a := addr + uint16(2*i)
		if i%8 == 0 {
			fmt.Fprintf(&line, "%04X:", a)
			ascii = ascii[:0]
		}
		v := m.Mux.Peek16(a)
		fmt.Fprintf(&line, " %04X", v)
		ascii = append(ascii, printable(hwio.Hi(v)), printable(hwio.Lo(v)))
		if i%8 == 7 || i == n-1 {
			fmt.Fprintf(w, "%-45s %s\n", line.String(), ascii)
			line.Reset()
		}
		if a == 0xFFFE {
			break
		}
	}
	if line.Len() > 0 {
		fmt.Fprintf(w, "%-45s %s\n", line.String(), ascii)
	}
}

func printable(b byte) byte {
	if b < 0x20 || b > 0x7E {
		return '.'
	}
	return b
}
