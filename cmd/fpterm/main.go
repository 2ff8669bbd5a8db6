package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/juju/errors"
	"github.com/fptk/fpterm/cmd/fpterm/sensor"
	"github.com/fptk/fpterm/cmd/fpterm/subcmd"
	"github.com/fptk/fpterm/cmd/fpterm/terminal"
	"github.com/fptk/fpterm/internal/state"
	state_new "github.com/fptk/fpterm/internal/state/new"
	"github.com/fptk/fpterm/internal/tele"
	"github.com/fptk/fpterm/log2"
)

var modules = []subcmd.Mod{
	terminal.Mod,
	sensor.Mod,
}

// set at build time with -ldflags "-X main.BuildVersion=..."
var BuildVersion string = "unknown"

func main() {
	log := log2.NewStderr(log2.LDebug)
	flagConfig := flag.String("config", "fpterm.hcl", "")
	flag.Parse()

	mod, err := subcmd.Parse(flag.Arg(0), modules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "command line error: %v\n", err)
		fmt.Fprintf(os.Stderr, "usage: fpterm [-config=fpterm.hcl] command\ncommands:")
		for i := range modules {
			fmt.Fprintf(os.Stderr, " %s", modules[i].Name)
		}
		fmt.Fprint(os.Stderr, "\n")
		os.Exit(1)
	}

	if subcmd.SdNotify("STATUS=init") {
		// under systemd, journal adds timestamps
		log.SetFlags(log2.LServiceFlags)
	} else {
		log.SetFlags(log2.LInteractiveFlags)
	}
	log.Debugf("command=%s config=%s", mod.Name, *flagConfig)

	config := state.MustReadConfig(log, state.NewOsFullReader(), *flagConfig)
	ctx, g := state_new.NewContext(log, tele.New())
	g.BuildVersion = BuildVersion
	if err := mod.Main(ctx, config); err != nil {
		g.Fatal(errors.Annotatef(err, "command=%s", mod.Name))
	}
}
