// 4x4 matrix keypad scanned over GPIO character device.
// Rows are driven one at a time, columns are read back; a closed
// switch shorts the active row to its column.
package keypad

import (
	"time"

	"github.com/juju/errors"
	gpio "github.com/temoto/gpio-cdev-go"
	"github.com/fptk/fpterm/hardware/input"
	"github.com/fptk/fpterm/internal/types"
)

const SourceTag = "keypad"

// Row-major symbol map of the common 4x4 membrane keypad.
const DefaultLayout = "123A456B789C*0#D"

const defaultPollInterval = 20 * time.Millisecond

type Config struct { //nolint:maligned
	Enable bool   `hcl:"enable"`
	Chip   string `hcl:"chip"`
	// hcl v1 decodes numeric lists into int only
	Rows   []int  `hcl:"rows"`
	Cols   []int  `hcl:"cols"`
	Layout string `hcl:"layout"`
	PollMs int    `hcl:"poll_ms"`
}

func gpioLines(ns []int) []uint32 {
	lines := make([]uint32, len(ns))
	for i, n := range ns {
		lines[i] = uint32(n)
	}
	return lines
}

type Keypad struct {
	chip    gpio.Chiper
	rows    gpio.Lineser
	cols    gpio.Lineser
	rowSet  []gpio.LineSetFunc
	colIdx  []int
	layout  []types.InputKey
	nrows   int
	ncols   int
	poll    time.Duration
	pressed types.InputKey // nonzero while a key is held
}

// compile-time interface compliance test
var _ input.Source = new(Keypad)

func (self *Keypad) String() string { return SourceTag }

func New(config Config) (*Keypad, error) {
	layout, err := ParseLayout(config.Layout, len(config.Rows), len(config.Cols))
	if err != nil {
		return nil, errors.Trace(err)
	}

	self := &Keypad{
		layout: layout,
		nrows:  len(config.Rows),
		ncols:  len(config.Cols),
		poll:   defaultPollInterval,
	}
	if config.PollMs > 0 {
		self.poll = time.Duration(config.PollMs) * time.Millisecond
	}

	self.chip, err = gpio.Open(config.Chip, SourceTag)
	if err != nil {
		return nil, errors.Annotatef(err, "keypad gpio chip=%s", config.Chip)
	}
	rowLines := gpioLines(config.Rows)
	self.rows, err = self.chip.OpenLines(gpio.GPIOHANDLE_REQUEST_OUTPUT, SourceTag, rowLines...)
	if err != nil {
		self.chip.Close()
		return nil, errors.Annotate(err, "keypad rows")
	}
	self.cols, err = self.chip.OpenLines(gpio.GPIOHANDLE_REQUEST_INPUT, SourceTag, gpioLines(config.Cols)...)
	if err != nil {
		self.rows.Close()
		self.chip.Close()
		return nil, errors.Annotate(err, "keypad cols")
	}
	self.rowSet = make([]gpio.LineSetFunc, self.nrows)
	for i, line := range rowLines {
		self.rowSet[i] = self.rows.SetFunc(line)
	}
	self.colIdx = make([]int, self.ncols)
	for i := range config.Cols {
		self.colIdx[i] = i
	}
	return self, nil
}

func (self *Keypad) Close() error {
	self.cols.Close()
	self.rows.Close()
	return self.chip.Close()
}

// Blocks until a new key press is registered.
// Key release ends the debounce hold and is not reported.
func (self *Keypad) Read() (types.InputEvent, error) {
	for {
		key, err := self.scan()
		if err != nil {
			return types.InputEvent{}, errors.Trace(err)
		}

		switch {
		case key == 0 && self.pressed != 0: // release
			self.pressed = 0
		case key != 0 && self.pressed == 0: // new press
			self.pressed = key
			return types.InputEvent{Source: SourceTag, Key: key}, nil
		}
		time.Sleep(self.poll)
	}
}

// One pass over all rows. Returns first closed switch or 0.
func (self *Keypad) scan() (types.InputKey, error) {
	for r := 0; r < self.nrows; r++ {
		for i := range self.rowSet {
			if i == r {
				self.rowSet[i](1)
			} else {
				self.rowSet[i](0)
			}
		}
		if err := self.rows.Flush(); err != nil {
			return 0, errors.Annotate(err, "keypad row flush")
		}
		data, err := self.cols.Read()
		if err != nil {
			return 0, errors.Annotate(err, "keypad col read")
		}
		for c := 0; c < self.ncols; c++ {
			if data.Values[c] != 0 {
				return self.layout[r*self.ncols+c], nil
			}
		}
	}
	return 0, nil
}

func ParseLayout(layout string, nrows, ncols int) ([]types.InputKey, error) {
	if layout == "" {
		layout = DefaultLayout
	}
	if nrows == 0 || ncols == 0 {
		return nil, errors.NotValidf("keypad rows/cols empty")
	}
	if len(layout) != nrows*ncols {
		return nil, errors.NotValidf("keypad layout=%s length=%d expect rows*cols=%d",
			layout, len(layout), nrows*ncols)
	}
	keys := make([]types.InputKey, len(layout))
	for i := 0; i < len(layout); i++ {
		keys[i] = types.InputKey(layout[i])
	}
	return keys, nil
}
