package main

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"
	"time"

	"github.com/c-bata/go-prompt"
	"github.com/hako/durafmt"
	"github.com/juju/errors"

	"github.com/linled/coffee-kiosk/internal/state"
	"github.com/linled/coffee-kiosk/internal/types"
	"github.com/linled/coffee-kiosk/internal/ui"
	"github.com/linled/coffee-kiosk/log2"
)

const usage = `commands, time is virtual and moves only with wait/swipe
- move X Y          pointer move
- swipe X Y DY [MS] move to X,Y then after MS (default 50) to X,Y+DY
- click X Y         pointer press
- key o|left|right|quit
- wait D            advance clock, D is milliseconds or Go duration (1.5s)
- param KEY         toggle parameter
- status            scene, session, timers
`

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// logHost renders by logging.
type logHost struct {
	log *log2.Log
}

func (self logHost) ShowScene(s types.SceneID) { self.log.Infof("show %s", s.String()) }
func (self logHost) SetProgress(f float64, d time.Duration) {
	self.log.Infof("progress %.0f%% in %v", f*100, d)
}
func (self logHost) RecenterCursor()        { self.log.Debugf("recenter cursor") }
func (self logHost) SetCursorHidden(h bool) { self.log.Debugf("cursor hidden=%t", h) }
func (self logHost) Play(s types.Sound)     { self.log.Infof("play %s", s.String()) }

type repl struct {
	g   *state.Global
	log *log2.Log
	ui  *ui.UI
	now time.Time
}

func newRepl(ctx context.Context, epoch time.Time) (*repl, error) {
	g := state.GetGlobal(ctx)
	self := &repl{g: g, log: g.Log, ui: ui.New(), now: epoch}
	if err := self.ui.Init(ctx, logHost{log: g.Log}, epoch); err != nil {
		return nil, errors.Annotate(err, "ui init")
	}
	return self, nil
}

func (self *repl) wait(d time.Duration) int {
	self.now = self.now.Add(d)
	return self.ui.Advance(self.now)
}

func (self *repl) pointer(kind types.EventKind, x, y int) {
	self.ui.Handle(types.Event{
		Kind:    kind,
		Source:  "cli",
		Pointer: types.PointerSample{Pos: image.Pt(x, y), TimeMs: self.now.UnixMilli()},
	})
}

func (self *repl) exec(line string) error {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}
	cmd, args := words[0], words[1:]
	switch cmd {
	case "help":
		self.log.Infof(usage)

	case "move", "click":
		xy, err := parseInts(args, 2, 2)
		if err != nil {
			return errors.Annotate(err, cmd)
		}
		kind := types.EventPointerMove
		if cmd == "click" {
			kind = types.EventPointerPress
		}
		self.pointer(kind, xy[0], xy[1])

	case "swipe":
		v, err := parseInts(args, 3, 4)
		if err != nil {
			return errors.Annotate(err, cmd)
		}
		ms := 50
		if len(v) == 4 {
			ms = v[3]
		}
		self.pointer(types.EventPointerMove, v[0], v[1])
		self.wait(time.Duration(ms) * time.Millisecond)
		self.pointer(types.EventPointerMove, v[0], v[1]+v[2])

	case "key":
		if len(args) != 1 {
			return errors.NotValidf("key args=%v", args)
		}
		k, ok := keyNames[strings.ToLower(args[0])]
		if !ok {
			return errors.NotFoundf("key=%s", args[0])
		}
		self.ui.Handle(types.Event{Kind: types.EventKey, Source: "cli", Key: k})

	case "wait":
		if len(args) != 1 {
			return errors.NotValidf("wait args=%v", args)
		}
		d, err := parseDuration(args[0])
		if err != nil {
			return errors.Annotate(err, cmd)
		}
		n := self.wait(d)
		self.log.Debugf("wait %v fired=%d", d, n)

	case "param":
		if len(args) != 1 {
			return errors.NotValidf("param args=%v", args)
		}
		v, ok := self.g.Params.Toggle(args[0])
		if !ok {
			return errors.NotFoundf("param=%s", args[0])
		}
		self.log.Infof("param %s=%t", args[0], v)

	case "status":
		self.log.Infof(self.status())

	default:
		return errors.NotFoundf("command=%s", cmd)
	}
	return nil
}

func (self *repl) status() string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "scene=%s shown=%s interactive=%t", self.ui.Scene().String(), self.ui.Shown().String(), self.ui.Interactive())
	fmt.Fprintf(&b, " idle=%s", formatDuration(self.ui.IdleRemaining()))
	if t, ok := self.ui.NextTimer(); ok {
		fmt.Fprintf(&b, " next=%s", formatDuration(t.Sub(self.now)))
	}
	sels := self.ui.Selections()
	parts := make([]string, len(sels))
	for i, s := range sels {
		parts[i] = s.String()
	}
	fmt.Fprintf(&b, " session=[%s] params: %s", strings.Join(parts, ", "), self.g.Params.String())
	return b.String()
}

func (self *repl) complete(d prompt.Document) []prompt.Suggest {
	suggests := []prompt.Suggest{
		{Text: "move", Description: "X Y"},
		{Text: "swipe", Description: "X Y DY [MS]"},
		{Text: "click", Description: "X Y"},
		{Text: "key", Description: "o|left|right|quit"},
		{Text: "wait", Description: "D"},
		{Text: "param", Description: "KEY"},
		{Text: "status"},
		{Text: "help"},
	}
	for _, p := range self.g.Params.List() {
		suggests = append(suggests, prompt.Suggest{Text: p.Key, Description: p.Name})
	}
	return prompt.FilterHasPrefix(suggests, d.GetWordBeforeCursor(), true)
}

var keyNames = map[string]types.Key{
	"o":     types.KeyOptions,
	"left":  types.KeyLeft,
	"right": types.KeyRight,
	"quit":  types.KeyQuit,
}

func parseInts(args []string, min, max int) ([]int, error) {
	if len(args) < min || len(args) > max {
		return nil, errors.NotValidf("args=%v expected count %d..%d", args, min, max)
	}
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, errors.Annotatef(err, "arg=%s", a)
		}
		out[i] = v
	}
	return out, nil
}

func parseDuration(s string) (time.Duration, error) {
	if ms, err := strconv.Atoi(s); err == nil {
		if ms < 0 {
			return 0, errors.NotValidf("duration=%s", s)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Annotatef(err, "duration=%s", s)
	}
	if d < 0 {
		return 0, errors.NotValidf("duration=%s", s)
	}
	return d, nil
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return durafmt.Parse(d).LimitFirstN(2).Format(shortUnits)
}
