package state

import (
	_ "embed"
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"

	"github.com/linled/coffee-kiosk/helpers"
	"github.com/linled/coffee-kiosk/internal/carousel"
	"github.com/linled/coffee-kiosk/internal/gesture"
	"github.com/linled/coffee-kiosk/internal/idle"
	"github.com/linled/coffee-kiosk/log2"
)

//go:embed default.hcl
var defaultConfig []byte

const DefaultSourceName = "(builtin)"

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource `hcl:"include"`

	Assets struct {
		Root string `hcl:"root"`
	} `hcl:"assets"`

	Hardware struct {
		Screen struct {
			Width      int  `hcl:"width"`
			Height     int  `hcl:"height"`
			Fullscreen bool `hcl:"fullscreen"`
		} `hcl:"screen"`
		Input struct {
			DevInputEvent struct {
				Enable bool   `hcl:"enable"`
				Device string `hcl:"device"`
				Grab   bool   `hcl:"grab"`
				MaxX   int    `hcl:"max_x"`
				MaxY   int    `hcl:"max_y"`
			} `hcl:"dev_input_event"`
		} `hcl:"input"`
	} `hcl:"hardware"`

	Params struct {
		CarouselSwipe      bool `hcl:"carousel_swipe"`
		ClickableButton    bool `hcl:"clickable_button"`
		MovementValidation bool `hcl:"movement_validation"`
		CursorHidden       bool `hcl:"cursor_hidden"`
		Debug              bool `hcl:"debug"`
	} `hcl:"params"`

	UI struct { //nolint:maligned
		IdleMs             int `hcl:"idle_ms"`
		FadeMs             int `hcl:"fade_ms"`
		ProgressMs         int `hcl:"progress_ms"`
		PaymentMs          int `hcl:"payment_ms"`
		PreparingMs        int `hcl:"preparing_ms"`
		ReadyMs            int `hcl:"ready_ms"`
		MessageFadeMs      int `hcl:"message_fade_ms"`
		ValidateHoverMs    int `hcl:"validate_hover_ms"`
		SwipePauseMs       int `hcl:"swipe_pause_ms"`
		SoundMinIntervalMs int `hcl:"sound_min_interval_ms"`
		AutoScrollMs       int `hcl:"auto_scroll_ms"`

		Carousel struct {
			Visible      int     `hcl:"visible"`
			QuickStep    int     `hcl:"quick_step"`
			QuickModulus int     `hcl:"quick_modulus"`
			EdgeZone     float64 `hcl:"edge_zone"`
			SpeedMin     float64 `hcl:"speed_min"`
			SpeedMax     float64 `hcl:"speed_max"`
			AnimMs       int     `hcl:"anim_ms"`
		} `hcl:"carousel"`
		Card        GestureConfig `hcl:"card"`
		Interactive GestureConfig `hcl:"interactive"`
	} `hcl:"ui"`

	_copy_guard sync.Mutex //nolint:unused
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

type GestureConfig struct {
	ElapsedMs int `hcl:"elapsed_ms"`
	Distance  int `hcl:"distance"`
}

func (self GestureConfig) Profile(def gesture.Profile) gesture.Profile {
	p := gesture.Profile{
		MaxElapsed:  helpers.IntMillisDefault(self.ElapsedMs, def.MaxElapsed),
		MinDistance: self.Distance,
	}
	if p.MinDistance == 0 {
		p.MinDistance = def.MinDistance
	}
	return p
}

func (c *Config) IdleTimeout() time.Duration {
	return helpers.IntMillisDefault(c.UI.IdleMs, idle.DefaultTimeout)
}
func (c *Config) FadeDuration() time.Duration {
	return helpers.IntMillisDefault(c.UI.FadeMs, 1500*time.Millisecond)
}
func (c *Config) ProgressDuration() time.Duration {
	return helpers.IntMillisDefault(c.UI.ProgressMs, 500*time.Millisecond)
}
func (c *Config) PaymentDuration() time.Duration {
	return helpers.IntMillisDefault(c.UI.PaymentMs, 5*time.Second)
}
func (c *Config) PreparingDuration() time.Duration {
	return helpers.IntMillisDefault(c.UI.PreparingMs, 5*time.Second)
}
func (c *Config) ReadyDuration() time.Duration {
	return helpers.IntMillisDefault(c.UI.ReadyMs, 3*time.Second)
}
func (c *Config) MessageFadeDuration() time.Duration {
	return helpers.IntMillisDefault(c.UI.MessageFadeMs, time.Second)
}
func (c *Config) ValidateHoverDuration() time.Duration {
	return helpers.IntMillisDefault(c.UI.ValidateHoverMs, 200*time.Millisecond)
}
func (c *Config) SwipePause() time.Duration {
	return helpers.IntMillisDefault(c.UI.SwipePauseMs, 500*time.Millisecond)
}
func (c *Config) SoundMinInterval() time.Duration {
	return helpers.IntMillisDefault(c.UI.SoundMinIntervalMs, 80*time.Millisecond)
}
func (c *Config) AutoScrollInterval() time.Duration {
	return helpers.IntMillisDefault(c.UI.AutoScrollMs, 30*time.Millisecond)
}

func (c *Config) CardProfile() gesture.Profile { return c.UI.Card.Profile(gesture.CardProfile) }
func (c *Config) InteractiveProfile() gesture.Profile {
	return c.UI.Interactive.Profile(gesture.InteractiveProfile)
}

// CarouselConfig fills zero values from carousel.DefaultConfig.
func (c *Config) CarouselConfig() carousel.Config {
	def := carousel.DefaultConfig()
	cc := c.UI.Carousel
	result := carousel.Config{
		Visible:      cc.Visible,
		QuickStep:    cc.QuickStep,
		QuickModulus: cc.QuickModulus,
		EdgeZone:     cc.EdgeZone,
		SpeedMin:     cc.SpeedMin,
		SpeedMax:     cc.SpeedMax,
		AnimDuration: helpers.IntMillisDefault(cc.AnimMs, def.AnimDuration),
	}
	if result.Visible == 0 {
		result.Visible = def.Visible
	}
	if result.QuickStep == 0 {
		result.QuickStep = def.QuickStep
	}
	if result.EdgeZone == 0 {
		result.EdgeZone = def.EdgeZone
	}
	if result.SpeedMin == 0 {
		result.SpeedMin = def.SpeedMin
	}
	if result.SpeedMax == 0 {
		result.SpeedMax = def.SpeedMax
	}
	return result
}

func (c *Config) ScreenSize() (int, int) {
	w, h := c.Hardware.Screen.Width, c.Hardware.Screen.Height
	if w <= 0 || h <= 0 {
		return 1280, 800
	}
	return w, h
}

// Validate reports all inconsistencies at once.
func (c *Config) Validate() error {
	errs := make([]error, 0, 4)
	ms := []struct {
		name  string
		value int
	}{
		{"idle_ms", c.UI.IdleMs},
		{"fade_ms", c.UI.FadeMs},
		{"progress_ms", c.UI.ProgressMs},
		{"payment_ms", c.UI.PaymentMs},
		{"preparing_ms", c.UI.PreparingMs},
		{"ready_ms", c.UI.ReadyMs},
		{"message_fade_ms", c.UI.MessageFadeMs},
		{"validate_hover_ms", c.UI.ValidateHoverMs},
		{"swipe_pause_ms", c.UI.SwipePauseMs},
		{"sound_min_interval_ms", c.UI.SoundMinIntervalMs},
		{"auto_scroll_ms", c.UI.AutoScrollMs},
		{"carousel.anim_ms", c.UI.Carousel.AnimMs},
		{"card.elapsed_ms", c.UI.Card.ElapsedMs},
		{"interactive.elapsed_ms", c.UI.Interactive.ElapsedMs},
	}
	for _, m := range ms {
		if m.value < 0 {
			errs = append(errs, errors.NotValidf("config: ui.%s=%d", m.name, m.value))
		}
	}
	if c.UI.Carousel.Visible < 0 {
		errs = append(errs, errors.NotValidf("config: ui.carousel.visible=%d", c.UI.Carousel.Visible))
	}
	if err := c.CarouselConfig().Validate(); err != nil {
		errs = append(errs, errors.Annotate(err, "config: ui.carousel"))
	}
	if c.Hardware.Screen.Width < 0 || c.Hardware.Screen.Height < 0 {
		errs = append(errs, errors.NotValidf("config: hardware.screen=%dx%d", c.Hardware.Screen.Width, c.Hardware.Screen.Height))
	}
	if di := c.Hardware.Input.DevInputEvent; di.Enable && di.Device == "" {
		errs = append(errs, errors.NotValidf("config: hardware.input.dev_input_event.device=empty"))
	}
	return helpers.FoldErrors(errs)
}

func (c *Config) read(log *log2.Log, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		*errs = append(*errs, errors.Errorf("config duplicate source=%s", source.Name))
		return
	}
	log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	c.includeSeen[source.Name] = struct{}{}
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
		}
		return
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}
	c.unmarshal(source.Name, bs, errs)

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

func (c *Config) unmarshal(name string, bs []byte, errs *[]error) {
	if err := hcl.Unmarshal(bs, c); err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s content='%s'", name, string(bs))
		*errs = append(*errs, err)
	}
}

// ReadConfig applies builtin defaults, then named sources in order, later values win.
// fs may be nil when names is empty.
func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	if osfs, ok := fs.(*OsFullReader); ok && len(names) != 0 {
		dir, name := filepath.Split(names[0])
		osfs.SetBase(dir)
		names[0] = name
	}
	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	c.unmarshal(DefaultSourceName, defaultConfig, &errs)
	c.XXX_Include = nil
	for _, name := range names {
		c.read(log, fs, ConfigSource{Name: name}, &errs)
	}
	if len(errs) == 0 {
		if err := c.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return c, helpers.FoldErrors(errs)
}

func MustReadConfig(log *log2.Log, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}
