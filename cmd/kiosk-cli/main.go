// Headless kiosk driven from terminal on a virtual clock.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/juju/errors"

	"github.com/linled/coffee-kiosk/helpers/cli"
	"github.com/linled/coffee-kiosk/internal/state"
	state_new "github.com/linled/coffee-kiosk/internal/state/new"
	"github.com/linled/coffee-kiosk/log2"
)

var log = log2.NewStderr(log2.LDebug)

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagConfig := cmdline.String("config", "", "optional config file applied over builtin defaults")
	_ = cmdline.Parse(os.Args[1:])

	log.SetFlags(log2.LInteractiveFlags)

	ctx, g := state_new.NewContext(log)
	names := []string{}
	if *flagConfig != "" {
		names = append(names, *flagConfig)
	}
	g.MustInit(ctx, state.MustReadConfig(log, state.NewOsFullReader("."), names...))

	r, err := newRepl(ctx, time.Now())
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	exec := func(line string) {
		if err := r.exec(line); err != nil {
			log.Error(err)
		}
	}
	onSignal := func(s os.Signal) {
		log.Infof("signal=%v", s)
		g.Stop()
		os.Exit(1)
	}
	if err := cli.MainLoop("kiosk", exec, r.complete, onSignal); err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
}
