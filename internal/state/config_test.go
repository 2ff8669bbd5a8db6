package state

import (
	"context"
	"strings"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/temoto/alive/v2"
	"github.com/fptk/fpterm/hardware/input"
	"github.com/fptk/fpterm/internal/roster"
	tele_api "github.com/fptk/fpterm/internal/tele/api"
	"github.com/fptk/fpterm/log2"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		input     string
		check     func(testing.TB, context.Context)
		expectErr string
	}
	cases := []Case{
		{"empty", "", nil, ""},

		{"sensor",
			`hardware { sensor { device = "/dev/shmoo" baudrate = 57600 } }`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.Equal(t, "/dev/shmoo", g.Config.Hardware.Sensor.Device)
				assert.Equal(t, 57600, g.Config.Hardware.Sensor.Baudrate)
			},
			"",
		},

		{"keypad", `
hardware { keypad {
	enable = true
	chip = "/dev/gpiochip0"
	rows = [5, 6, 13, 19]
	cols = [12, 16, 20, 21]
	layout = "123A456B789C*0#D"
} }`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				kc := g.Config.Hardware.Keypad
				assert.True(t, kc.Enable)
				assert.Equal(t, []int{5, 6, 13, 19}, kc.Rows)
				assert.Equal(t, []int{12, 16, 20, 21}, kc.Cols)
				assert.Equal(t, "123A456B789C*0#D", kc.Layout)
			},
			"",
		},

		{"ui-front", `
ui {
	front {
		msg_intro = "PLACE FINGER"
		reset_sec = 30
		dwell_ms = 1200
	}
}`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.Equal(t, "PLACE FINGER", g.Config.UI.Front.MsgStateIntro)
				assert.Equal(t, 30, g.Config.UI.Front.ResetTimeoutSec)
				assert.Equal(t, 1200, g.Config.UI.Front.DwellMs)
			},
			"",
		},

		{"include-normalize", `
tele { term_id = 1 }
include "./empty" {}`,
			nil, ""},

		{"include-optional", `
include "term-id-7" {}
include "non-exist" { optional = true }`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.Equal(t, 7, g.Config.Tele.TermId)
			}, ""},

		{"include-overwrites", `
tele { term_id = 1 }
include "term-id-7" {}`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.Equal(t, 7, g.Config.Tele.TermId)
			}, ""},

		{"error-syntax", `hello`, nil, "key 'hello' expected start of object"},
		{"error-include-loop", `include "include-loop" {}`, nil, "config include loop: from=include-loop include=include-loop"},
	}
	mkCheck := func(c Case) func(*testing.T) {
		return func(t *testing.T) {
			// log := log2.NewStderr(log2.LDebug) // helps with panics
			log := log2.NewTest(t, log2.LDebug)

			// XXX FIXME code duplicate from NewContext but stupid import cycle
			g := &Global{
				Alive: alive.NewAlive(),
				Log:   log,
				Tele:  tele_api.Noop{},
			}
			g.Roster = roster.NewPersistent("", log)
			g.Hardware.Input = input.NewDispatch(log, g.Alive.StopChan())
			ctx := context.Background()
			ctx = context.WithValue(ctx, ContextKey, g)

			fs := NewMockFullReader(map[string]string{
				"test-inline":  c.input,
				"empty":        "",
				"term-id-7":    "tele{term_id=7}",
				"error-syntax": "hello",
				"include-loop": `include "include-loop" {}`,
			})
			cfg, err := ReadConfig(log, fs, "test-inline")
			if err == nil {
				err = g.Init(ctx, cfg)
			}
			if c.expectErr == "" {
				if err != nil {
					t.Fatalf("error expected=nil actual='%v'", errors.ErrorStack(err))
				}
				if c.check != nil {
					c.check(t, ctx)
				}
			} else {
				if !strings.Contains(err.Error(), c.expectErr) {
					t.Fatalf("error expected='%s' actual='%v'", c.expectErr, err)
				}
			}
		}
	}
	for _, c := range cases {
		t.Run(c.name, mkCheck(c))
	}
}
