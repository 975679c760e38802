package main

import (
	"flag"
	"image"
	"os"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/juju/errors"

	"github.com/linled/coffee-kiosk/hardware/input"
	"github.com/linled/coffee-kiosk/internal/assets"
	"github.com/linled/coffee-kiosk/internal/params"
	"github.com/linled/coffee-kiosk/internal/screen"
	"github.com/linled/coffee-kiosk/internal/state"
	state_new "github.com/linled/coffee-kiosk/internal/state/new"
	"github.com/linled/coffee-kiosk/internal/ui"
	"github.com/linled/coffee-kiosk/log2"
)

var BuildVersion string = "unknown" // set by ldflags -X

var log = log2.NewStderr(log2.LInfo)

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagDebug := cmdline.Bool("debug", false, "enable debug mode")
	flagConfig := cmdline.String("config", "", "optional config file applied over builtin defaults")
	_ = cmdline.Parse(os.Args[1:])

	if sdnotify("start") {
		// under systemd, journal adds timestamps
		log.SetFlags(log2.LServiceFlags)
	} else {
		log.SetFlags(log2.LInteractiveFlags)
	}

	ctx, g := state_new.NewContext(log)
	g.BuildVersion = BuildVersion
	g.Params.Set(params.Debug, *flagDebug)

	fs := state.NewOsFullReader(".")
	names := []string{}
	if *flagConfig != "" {
		names = append(names, *flagConfig)
	}
	config, err := state.ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	g.MustInit(ctx, config)
	if g.Params.Get(params.Debug) {
		log.SetLevel(log2.LDebug)
	}
	g.StopOnSignal()

	store := assets.New(log, fs, config.Assets.Root)
	host, err := screen.New(g, store)
	if err != nil {
		g.Fatal(err)
	}
	kiosk := ui.New()
	if err := kiosk.Init(ctx, host, time.Now()); err != nil {
		g.Fatal(err, "ui init")
	}
	host.Attach(kiosk)
	runDevInput(g, kiosk)

	w, h := config.ScreenSize()
	ebiten.SetWindowTitle("Linled coffee")
	ebiten.SetWindowSize(w, h)
	ebiten.SetFullscreen(config.Hardware.Screen.Fullscreen)
	sdnotify(daemon.SdNotifyReady)
	log.Infof("running")
	err = ebiten.RunGame(host)
	sdnotify(daemon.SdNotifyStopping)
	if !g.StopWait(5 * time.Second) {
		log.Errorf("stop timeout")
	}
	if err != nil {
		log.Fatal(errors.ErrorStack(errors.Annotate(err, "ebiten")))
	}
}

// runDevInput starts optional evdev touch panel reader feeding UI queue.
func runDevInput(g *state.Global, kiosk *ui.UI) {
	c := g.Config.Hardware.Input.DevInputEvent
	if !c.Enable {
		return
	}
	w, h := g.Config.ScreenSize()
	src, err := input.NewDevInputEventSource(input.DevInputEventConfig{
		Device: c.Device,
		Grab:   c.Grab,
		Screen: image.Pt(w, h),
		MaxX:   c.MaxX,
		MaxY:   c.MaxY,
	})
	if err != nil {
		g.Error(err, "config: hardware.input.dev_input_event")
		return
	}
	stopCh := g.Alive.StopChan()
	d := input.NewDispatch(g.Log, stopCh)
	d.SubscribeFunc("ui", kiosk.Emit, stopCh)
	if !g.Alive.Add(1) {
		_ = src.Close()
		return
	}
	go func() {
		defer g.Alive.Done()
		d.Run([]input.Source{src})
	}()
	go func() {
		<-stopCh
		_ = src.Close()
	}()
}

func sdnotify(s string) bool {
	ok, err := daemon.SdNotify(false, s)
	if err != nil {
		log.Fatal("sdnotify: ", errors.ErrorStack(err))
	}
	return ok
}
