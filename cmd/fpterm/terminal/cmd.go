package terminal

import (
	"context"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/fptk/fpterm/cmd/fpterm/subcmd"
	"github.com/fptk/fpterm/internal/state"
	"github.com/fptk/fpterm/internal/ui"
)

var Mod = subcmd.Mod{Name: "terminal", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	g.MustInit(ctx, config)
	g.Log.Debugf("config=%+v", g.Config)

	display := g.MustTextDisplay()
	display.SetLines(g.Config.UI.Front.MsgWait, "", "", "")

	app := new(ui.UI)
	if err := app.Init(ctx); err != nil {
		return errors.Annotate(err, "ui init")
	}

	subcmd.SdNotify(daemon.SdNotifyReady)
	g.Log.Debugf("terminal init complete, running")

	app.Loop(ctx)
	g.Alive.Wait()
	return nil
}
