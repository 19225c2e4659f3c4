package main

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"ti99/emu/log"
)

type mode byte

const (
	mapMode     mode = iota // Show mounted devices
	checkMode               // Sweep the address space for conflicts
	dumpMode                // Hexdump memory
	execMode                // Run a bus access script
	stateMode               // Print datamux state
	configMode              // Print effective configuration
	versionMode             // Show version
)

type (
	CLI struct {
		Map     Map     `cmd:"" help:"Show the devices mounted on the datamux." default:"1"`
		Check   Check   `cmd:"" help:"Check that no address is decoded by more than one device."`
		Dump    Dump    `cmd:"" help:"Dump memory as seen by the CPU, without side effects."`
		Exec    Exec    `cmd:"" help:"Execute a script of bus accesses."`
		State   State   `cmd:"" help:"Print the datamux state as JSON."`
		Config  Config  `cmd:"" help:"Print the effective configuration."`
		Version Version `cmd:"" help:"Show version."`

		ConfigPath string     `name:"config" help:"${config_help}" type:"existingfile" placeholder:"FILE"`
		Log        logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		Set        []string   `name:"set" help:"${set_help}" placeholder:"NAME=VALUE"`

		mode mode
	}

	Map   struct{}
	Check struct{}

	Dump struct {
		From  hexAddr `arg:"" help:"Start address (hex)." default:"0"`
		Words int     `name:"words" short:"n" help:"Number of words to dump." default:"128"`
	}

	Exec struct {
		Script string   `arg:"" name:"script" help:"${script_help}" type:"existingfile"`
		Trace  *outfile `name:"trace" help:"Write datamux access trace." placeholder:"FILE|-"`
	}

	State   struct{}
	Config  struct{}
	Version struct{}
)

var vars = kong.Vars{
	"config_help": "Configuration file. (default: user config directory)",
	"log_help":    "Enable debug logging for specified modules.",
	"set_help":    "Override a runtime setting, e.g. --set speech=1 --set ram=2.",
	"script_help": "Script file, one access per line: 'r ADDR', 'w ADDR WORD', 'wb ADDR BYTE', 'cru ADDR BIT'.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("ti99mux"),
		kong.Description("TI-99/4A datamux bus inspector."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars,
	)
	checkf(err, "failed to create command line parser")

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch strings.Fields(ctx.Command())[0] {
	case "check":
		cfg.mode = checkMode
	case "dump":
		cfg.mode = dumpMode
	case "exec":
		cfg.mode = execMode
	case "state":
		cfg.mode = stateMode
	case "config":
		cfg.mode = configMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = mapMode
	}
	return cfg
}

// settings parses the --set overrides.
func (c *CLI) settings() (map[string]uint32, error) {
	m := make(map[string]uint32, len(c.Set))
	for _, kv := range c.Set {
		name, val, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid setting %q, want NAME=VALUE", kv)
		}
		v, err := strconv.ParseUint(val, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid value for setting %s: %w", name, err)
		}
		m[name] = uint32(v)
	}
	return m, nil
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
	var strs []string
	for _, m := range log.ModuleNames() {
		strs = append(strs, "    - "+m)
	}

	fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	return nil
}

type logModMask log.ModuleMask

// Decode implements kong.MapperValue interface.
func (lm *logModMask) Decode(ctx *kong.DecodeContext) error {
	var list string
	if err := ctx.Scan.PopValueInto("modules", &list); err != nil {
		return err
	}
	mask, off, err := parseLogModules(list)
	if err != nil {
		return err
	}
	if off {
		log.Disable()
		return nil
	}
	*lm = logModMask(mask)
	log.EnableDebugModules(mask)
	return nil
}

// parseLogModules parses a comma-separated list of log modules, 'all' or
// 'no'. off is true for 'no'.
func parseLogModules(list string) (mask log.ModuleMask, off bool, err error) {
	names := strings.Split(list, ",")
	if slices.Contains(names, "no") {
		if len(names) > 1 {
			return 0, false, fmt.Errorf("'no' can't be combined with other log modules")
		}
		return 0, true, nil
	}

	for _, name := range names {
		if name == "all" {
			mask |= log.ModuleMaskAll
			continue
		}
		mod, ok := log.ModuleByName(name)
		if !ok {
			return 0, false, fmt.Errorf("unknown log module %q", name)
		}
		mask |= mod.Mask()
	}
	return mask, false, nil
}

// hexAddr is a 16-bit address written in hex, with optional '>' (TI
// notation) or '0x' prefix.
type hexAddr uint16

func parseHex16(s string) (uint16, error) {
	s = strings.TrimPrefix(s, ">")
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid hex value %q", s)
	}
	return uint16(v), nil
}

// Decode implements kong.MapperValue interface.
func (a *hexAddr) Decode(ctx *kong.DecodeContext) error {
	var s string
	if err := ctx.Scan.PopValueInto("address", &s); err != nil {
		return err
	}
	v, err := parseHex16(s)
	if err != nil {
		return err
	}
	*a = hexAddr(v)
	return nil
}

// outfile is a file path flag, where '-' means standard output.
type outfile struct {
	*os.File
}

// Decode implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	var path string
	if err := ctx.Scan.PopValueInto("file", &path); err != nil {
		return err
	}
	if path == "-" {
		f.File = os.Stdout
		return nil
	}

	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	f.File = fd
	return nil
}

func (f *outfile) Close() error {
	if f.File == os.Stdout {
		return nil
	}
	return f.File.Close()
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
