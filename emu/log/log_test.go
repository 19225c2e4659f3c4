package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gopkg.in/Sirupsen/logrus.v0"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	logger := logrus.StandardLogger()
	prevOut, prevFmt := logger.Out, logger.Formatter
	logger.Out = buf
	logger.Formatter = &logrus.TextFormatter{DisableColors: true}
	t.Cleanup(func() {
		logger.Out = prevOut
		logger.Formatter = prevFmt
	})
	return buf
}

func TestModuleByName(t *testing.T) {
	for _, name := range []string{"emu", "mux", "hwio", "cru", "grom", "peb"} {
		mod, ok := ModuleByName(name)
		if !ok {
			t.Fatalf("module %q not found", name)
		}
		if mod.String() != name {
			t.Errorf("Module(%d).String() = %q, want %q", mod, mod.String(), name)
		}
	}

	if _, ok := ModuleByName("<error>"); ok {
		t.Errorf("placeholder module should not be found by name")
	}
	if _, ok := ModuleByName("nope"); ok {
		t.Errorf("unknown module should not be found")
	}
}

func TestDebugGating(t *testing.T) {
	t.Cleanup(func() { DisableDebugModules(ModuleMaskAll) })

	if ModMux.DebugZ("x") != nil {
		t.Fatalf("debug entry should be nil while module is disabled")
	}
	if ModMux.WarnZ("x") == nil {
		t.Fatalf("warnings should always be enabled")
	}

	EnableDebugModules(ModMux.Mask())
	if ModMux.DebugZ("x") == nil {
		t.Fatalf("debug entry should be non-nil once module is enabled")
	}
	if ModGROM.DebugZ("x") != nil {
		t.Fatalf("enabling one module should not enable others")
	}
}

func TestNilEntryZ(t *testing.T) {
	var z *EntryZ
	// Must not panic.
	z.Hex16("addr", 0x1234).Hex8("val", 0x56).String("s", "x").Error("err", errors.New("e")).End()
}

func TestEntryZOutput(t *testing.T) {
	buf := captureOutput(t)

	ModMux.WarnZ("unmapped write").
		Hex16("addr", 0x9c02).
		Hex8("val", 0x0f).
		Bool("peek", false).
		End()

	out := buf.String()
	for _, want := range []string{"unmapped write", "_mod=mux", "addr=9C02", "val=0F", "peek=false"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q does not contain %q", out, want)
		}
	}
}

func TestFieldValues(t *testing.T) {
	var z EntryZ
	z.Hex32("h32", 0xBEEF).
		Int("neg", -3).
		Uint("u", 42).
		Bool("on", true).
		Error("err", nil).
		Stringer("mod", ModCRU)

	want := map[string]string{
		"h32": "0000BEEF",
		"neg": "-3",
		"u":   "42",
		"on":  "true",
		"err": "<nil>",
		"mod": "cru",
	}
	for i := range z.fields[:z.n] {
		f := &z.fields[i]
		if got := f.value(); got != want[f.key] {
			t.Errorf("field %s = %q, want %q", f.key, got, want[f.key])
		}
	}
	if z.n != len(want) {
		t.Errorf("got %d fields, want %d", z.n, len(want))
	}
}

func TestDisable(t *testing.T) {
	t.Cleanup(func() { disabled = false })
	Disable()

	if ModEmu.ErrorZ("x") != nil {
		t.Errorf("errors should be discarded once logging is disabled")
	}
	if ModEmu.FatalZ("x") == nil {
		t.Errorf("fatal entries must survive Disable")
	}
}
