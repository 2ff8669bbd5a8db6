// Interactive sensor exerciser for bring-up and support.
package sensor

import (
	"context"
	"strconv"
	"strings"
	"time"

	prompt "github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/fptk/fpterm/cmd/fpterm/subcmd"
	"github.com/fptk/fpterm/hardware/fingerprint"
	"github.com/fptk/fpterm/helpers/cli"
	"github.com/fptk/fpterm/internal/state"
)

const modName = "sensor-cli"

const usage = `syntax: commands separated by whitespace
- capture    capture image from sensor window
- tzN        image to character file, buffer N (1 or 2)
- build      combine buffers 1+2 into model
- storeN     store model into library slot N
- delN       delete template in slot N
- existsN    probe library slot N
- search     match buffer 1 against library
- count      number of used library slots
- wipe       erase whole library
- sN         pause N milliseconds
`

var Mod = subcmd.Mod{Name: modName, Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	synthConfig := &state.Config{}
	synthConfig.Hardware.Sensor = config.Hardware.Sensor
	synthConfig.Hardware.Sensor.LogDebug = true
	synthConfig.Persist.Root = config.Persist.Root
	g.MustInit(ctx, synthConfig)

	if _, err := g.Sensor(); err != nil {
		return errors.Annotate(err, "sensor open")
	}

	g.Log.Debugf("%s init complete, running", modName)
	cli.MainLoop(modName, newExecutor(ctx), newCompleter(ctx))
	return nil
}

func newCompleter(ctx context.Context) func(d prompt.Document) []prompt.Suggest {
	suggests := []prompt.Suggest{
		{Text: "capture", Description: "capture image from sensor window"},
		{Text: "tzN", Description: "image to buffer N"},
		{Text: "build", Description: "combine buffers into model"},
		{Text: "storeN", Description: "store model into slot N"},
		{Text: "delN", Description: "delete template in slot N"},
		{Text: "existsN", Description: "probe library slot N"},
		{Text: "search", Description: "match buffer 1 against library"},
		{Text: "count", Description: "number of used library slots"},
		{Text: "wipe", Description: "erase whole library"},
		{Text: "sN", Description: "pause for N ms"},
	}

	return func(d prompt.Document) []prompt.Suggest {
		return prompt.FilterFuzzy(suggests, d.GetWordBeforeCursor(), true)
	}
}

func newExecutor(ctx context.Context) func(string) {
	g := state.GetGlobal(ctx)
	return func(line string) {
		for _, word := range strings.Split(line, " ") {
			word = strings.TrimSpace(word)
			if word == "" {
				continue
			}
			if err := execCommand(ctx, word); err != nil {
				g.Log.Errorf(errors.ErrorStack(err))
				return
			}
		}
	}
}

func execCommand(ctx context.Context, word string) error {
	g := state.GetGlobal(ctx)
	dev, err := g.Sensor()
	if err != nil {
		return err
	}

	switch {
	case word == "help":
		g.Log.Infof(usage)
		return nil

	case word == "capture":
		return dev.CaptureImage()

	case strings.HasPrefix(word, "tz"):
		n, err := parseSlot(word[2:])
		if err != nil {
			return err
		}
		return dev.ToTemplate(n)

	case word == "build":
		return dev.BuildModel()

	case strings.HasPrefix(word, "store"):
		n, err := parseSlot(word[5:])
		if err != nil {
			return err
		}
		return dev.StoreModel(n)

	case strings.HasPrefix(word, "del"):
		n, err := parseSlot(word[3:])
		if err != nil {
			return err
		}
		return dev.DeleteModel(n)

	case strings.HasPrefix(word, "exists"):
		n, err := parseSlot(word[6:])
		if err != nil {
			return err
		}
		found, err := dev.TemplateExists(n)
		if err != nil {
			return err
		}
		g.Log.Infof("slot=%d exists=%t", n, found)
		return nil

	case word == "search":
		slot, err := dev.Search()
		if err != nil {
			return err
		}
		g.Log.Infof("match slot=%d", slot)
		return nil

	case word == "count":
		us, ok := dev.(*fingerprint.UartSensor)
		if !ok {
			return errors.Errorf("count requires uart sensor")
		}
		n, err := us.TemplateCount()
		if err != nil {
			return err
		}
		g.Log.Infof("templates used=%d", n)
		return nil

	case word == "wipe":
		return dev.EmptyLibrary()

	case word[0] == 's':
		i, err := strconv.ParseUint(word[1:], 10, 32)
		if err != nil {
			return errors.Annotatef(err, "word=%s", word)
		}
		time.Sleep(time.Duration(i) * time.Millisecond)
		return nil

	default:
		return errors.Errorf("invalid command: '%s'", word)
	}
}

func parseSlot(s string) (uint8, error) {
	i, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, errors.Annotatef(err, "slot=%s", s)
	}
	if i >= fingerprint.MaxSlots {
		return 0, errors.Errorf("slot=%d max=%d", i, fingerprint.MaxSlots-1)
	}
	return uint8(i), nil
}
