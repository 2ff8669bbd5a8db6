package state

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/juju/errors"
	"github.com/fptk/fpterm/hardware/fingerprint"
	"github.com/fptk/fpterm/hardware/i2c"
	"github.com/fptk/fpterm/hardware/input"
	"github.com/fptk/fpterm/hardware/keypad"
	"github.com/fptk/fpterm/hardware/rtc"
	"github.com/fptk/fpterm/hardware/text_display"
	"github.com/fptk/fpterm/log2"
)

type hardware struct {
	HD44780 struct {
		once
		Device  *text_display.HD44780
		Display *text_display.TextDisplay
	}
	Input *input.Dispatch
	Rtc   struct {
		once
		Clock rtc.Clocker
	}
	Sensor struct {
		once
		Dev fingerprint.Sensor
	}
}

func (g *Global) MustTextDisplay() *text_display.TextDisplay {
	d, err := g.TextDisplay()
	if err != nil {
		g.Log.Fatal(err)
	}
	if d == nil {
		g.Log.Fatal("text display is not available")
	}
	return d
}

func (g *Global) TextDisplay() (*text_display.TextDisplay, error) {
	x := &g.Hardware.HD44780
	_ = x.do(func() error {
		if x.Display != nil { // state-new testing mode
			return nil
		}

		devConfig := &g.Config.Hardware.HD44780
		if !devConfig.Enable {
			g.Log.Infof("text display hd44780 is disabled")
			return nil
		}

		bus := i2c.NewI2CBus(byte(devConfig.Bus))
		dev, err := text_display.NewHD44780(bus, devConfig)
		if err != nil {
			return errors.Annotatef(err, "hd44780 config=%#v", devConfig)
		}
		x.Device = dev

		displayConfig := &text_display.TextDisplayConfig{
			Width:       uint32(devConfig.Width),
			Lines:       uint32(devConfig.Lines),
			Codepage:    devConfig.Codepage,
			ScrollDelay: time.Duration(devConfig.ScrollDelay) * time.Millisecond,
		}
		disp, err := text_display.NewTextDisplay(displayConfig)
		if err != nil {
			return errors.Annotatef(err, "NewTextDisplay config=%#v", displayConfig)
		}
		x.Display = disp
		x.Display.SetDevice(dev)
		go x.Display.Run()
		return nil
	})
	return x.Display, x.err
}

func (g *Global) Clock() rtc.Clocker {
	x := &g.Hardware.Rtc
	_ = x.do(func() error {
		if x.Clock != nil { // state-new testing mode
			return nil
		}

		devConfig := g.Config.Hardware.Rtc
		if !devConfig.Enable {
			g.Log.Infof("rtc chip is disabled, using system clock")
			x.Clock = rtc.SystemClock{}
			return nil
		}
		clock, err := rtc.NewDS3231(devConfig)
		if err != nil {
			// wrong clock beats no clock, scans still record
			g.Error(errors.Annotatef(err, "rtc config=%#v", devConfig))
			x.Clock = rtc.SystemClock{}
			return nil
		}
		x.Clock = clock
		return nil
	})
	return x.Clock
}

func (g *Global) Sensor() (fingerprint.Sensor, error) {
	x := &g.Hardware.Sensor
	_ = x.do(func() error {
		if x.Dev != nil { // state-new testing mode
			return nil
		}

		devConfig := g.Config.Hardware.Sensor
		sensorLog := g.Log.Clone(log2.LInfo)
		if devConfig.LogDebug {
			sensorLog.SetLevel(log2.LDebug)
		}
		dev := fingerprint.NewUartSensor(sensorLog)
		if err := dev.Open(devConfig); err != nil {
			return errors.Annotatef(err, "sensor config=%#v", devConfig)
		}
		x.Dev = dev
		return nil
	})
	return x.Dev, x.err
}

func (g *Global) initInput() error {
	if g.Hardware.Input != nil { // test code may set earlier
		// no hardware sources, test emits events directly
		go g.Hardware.Input.Run(nil)
		return nil
	}
	g.Hardware.Input = input.NewDispatch(g.Log, g.Alive.StopChan())

	// support more input sources here
	sources := make([]input.Source, 0, 4)

	if !g.Config.Hardware.Keypad.Enable {
		g.Log.Infof("input=%s disabled", keypad.SourceTag)
	} else {
		src, err := keypad.New(g.Config.Hardware.Keypad)
		if err != nil {
			return errors.Annotatef(err, "input=%s", keypad.SourceTag)
		}
		sources = append(sources, src)
	}

	if !g.Config.Hardware.Input.DevInputEvent.Enable {
		g.Log.Infof("input=%s disabled", input.DevInputEventTag)
	} else {
		src, err := input.NewDevInputEventSource(g.Config.Hardware.Input.DevInputEvent.Device)
		if err != nil {
			return errors.Annotatef(err, "input=%s", input.DevInputEventTag)
		}
		sources = append(sources, src)
	}

	go g.Hardware.Input.Run(sources)
	return nil
}

type once struct {
	sync.Mutex
	called uint32 // atomic bool
	err    error
}

func (o *once) done() bool {
	return atomic.LoadUint32(&o.called) == 1
}

func (o *once) do(f func() error) error {
	if o.done() { // fast path
		return o.err
	}
	o.Lock()
	defer o.Unlock()
	if o.done() {
		return o.err
	}
	o.err = f()
	atomic.StoreUint32(&o.called, 1)
	return o.err
}
