// Sorry, workaround to import cycles.
package state_new

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/temoto/alive/v2"
	"github.com/fptk/fpterm/hardware/fingerprint"
	"github.com/fptk/fpterm/hardware/input"
	"github.com/fptk/fpterm/hardware/rtc"
	"github.com/fptk/fpterm/hardware/text_display"
	"github.com/fptk/fpterm/internal/roster"
	"github.com/fptk/fpterm/internal/state"
	tele_api "github.com/fptk/fpterm/internal/tele/api"
	"github.com/fptk/fpterm/log2"
)

func NewContext(log *log2.Log, teler tele_api.Teler) (context.Context, *state.Global) {
	if log == nil {
		panic("code error NewContext() log=nil")
	}

	g := &state.Global{
		Alive: alive.NewAlive(),
		Log:   log,
		Tele:  teler,
	}
	ctx := context.Background()
	ctx = context.WithValue(ctx, state.ContextKey, g)

	return ctx, g
}

func NewTestContext(t testing.TB, buildVersion string, confString string) (context.Context, *state.Global) {
	fs := state.NewMockFullReader(map[string]string{
		"test-inline": confString,
	})

	var log *log2.Log
	if os.Getenv("fpterm_test_log_stderr") == "1" {
		log = log2.NewStderr(log2.LDebug) // useful with panics
	} else {
		log = log2.NewTest(t, log2.LDebug)
	}
	log.SetFlags(log2.LTestFlags)
	ctx, g := NewContext(log, tele_api.Noop{})
	g.BuildVersion = buildVersion

	g.Hardware.HD44780.Display = text_display.NewMockTextDisplay(&text_display.TextDisplayConfig{Width: 16, Lines: 4})
	g.Hardware.Rtc.Clock = &rtc.MockClock{T: time.Date(2020, 2, 3, 4, 5, 6, 0, time.UTC)}
	g.Hardware.Sensor.Dev = fingerprint.NewMockSensor()
	g.Hardware.Input = input.NewDispatch(log, g.Alive.StopChan())
	g.Roster = roster.NewPersistent("", log)

	g.MustInit(ctx, state.MustReadConfig(log, fs, "test-inline"))

	return ctx, g
}
