package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"regcheck/log"
)

type mode byte

const (
	runMode     mode = iota // Run the conformance checklist
	planMode                // Show the test plan
	versionMode             // Show regcheck version
)

type (
	CLI struct {
		Run     RunCmd  `cmd:"" help:"Run the conformance checklist against the device. (default command)" default:"1"`
		Plan    PlanCmd `cmd:"" help:"${plan_help}"`
		Version Version `cmd:"" help:"Show regcheck version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	RunCmd struct {
		Bus           string `name:"bus" help:"I2C bus to use (name or number), overrides the config file." placeholder:"NAME"`
		Seed          uint64 `name:"seed" help:"${seed_help}"`
		Deterministic bool   `name:"deterministic" help:"Cycle register addresses and values instead of drawing them at random."`
		StrictExit    bool   `name:"strict-exit" help:"${strict_help}"`
		Report        string `name:"report" help:"Write a JSON run report to FILE." type:"path" placeholder:"FILE"`
	}

	PlanCmd struct{}

	Version struct{}
)

var vars = kong.Vars{
	"plan_help":   "Print the ordered test list and effective settings, without touching the bus.",
	"seed_help":   "Seed for the random address/value source. 0 seeds from the clock.",
	"strict_help": "Exit with the failing test index instead of 0. The default keeps the outcome on the LEDs only.",
	"log_help":    "Enable debug logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("regcheck"),
		kong.Description("Conformance harness for the robotarm click register device."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch ctx.Command() {
	case "plan":
		cfg.mode = planMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") {
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
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
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
