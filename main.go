package main

import (
	"fmt"
	"os"
	"runtime/debug"
)

func main() {
	cli := parseArgs(os.Args[1:])
	cfg := LoadConfigOrDefault()

	switch cli.mode {
	case planMode:
		planMain(cfg)
	case versionMode:
		fmt.Println("regcheck", version())
	default:
		harnessMain(cli.Run, cfg)
	}
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "(devel)"
	}
	return info.Main.Version
}
