package text_display

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/juju/errors"
	"github.com/paulrosania/go-charset/charset"
	_ "github.com/paulrosania/go-charset/data"
	"github.com/temoto/alive/v2"
)

const MaxWidth = 40
const MaxLines = 4

var spaceBytes = bytes.Repeat([]byte{' '}, MaxWidth)

// Character-cell display driven line by line, no scrolling in hardware.
// Long lines are scrolled in software on Tick().
type TextDisplay struct { //nolint:maligned
	alive *alive.Alive
	mu    sync.Mutex
	dev   Devicer
	tr    atomic.Value
	width uint32
	lines uint32
	state State

	tickd time.Duration
	tick  uint32
	upd   chan<- State
}

type TextDisplayConfig struct {
	Codepage    string
	ScrollDelay time.Duration
	Width       uint32
	Lines       uint32
}

type Devicer interface {
	Clear()
	CursorYX(y, x uint8) bool
	Write(b []byte)
}

func NewTextDisplay(opt *TextDisplayConfig) (*TextDisplay, error) {
	if opt == nil {
		panic("code error NewTextDisplay() opt=nil")
	}
	self := &TextDisplay{
		alive: alive.NewAlive(),
		tickd: opt.ScrollDelay,
		width: opt.Width,
		lines: opt.Lines,
	}
	if self.lines == 0 {
		self.lines = 2
	}
	if self.lines > MaxLines {
		return nil, errors.NotValidf("display lines=%d max=%d", self.lines, MaxLines)
	}

	if opt.Codepage != "" {
		if err := self.SetCodepage(opt.Codepage); err != nil {
			return nil, errors.Trace(err)
		}
	}

	return self, nil
}

func (self *TextDisplay) SetCodepage(cp string) error {
	self.mu.Lock()
	defer self.mu.Unlock()

	tr, err := charset.TranslatorTo(cp)
	if err != nil {
		return err
	}
	self.tr.Store(tr)
	return nil
}

func (self *TextDisplay) SetDevice(dev Devicer) {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.dev = dev
}

func (self *TextDisplay) SetScrollDelay(d time.Duration) {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.tickd = d
}

func (self *TextDisplay) Width() uint32 { return atomic.LoadUint32(&self.width) }
func (self *TextDisplay) Lines() uint32 { return self.lines }

func (self *TextDisplay) Clear() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.state.Clear()
	self.flush()
}

// Temporary overlay: show lines, run wait, restore previous content.
func (self *TextDisplay) Message(lines []string, wait func()) {
	next := State{}
	for i := 0; i < len(lines) && i < int(self.lines); i++ {
		next.L[i] = self.Translate(lines[i])
	}

	self.mu.Lock()
	prev := self.state
	self.state = next
	self.flush()
	self.mu.Unlock()

	wait()

	self.mu.Lock()
	self.state = prev
	self.flush()
	self.mu.Unlock()
}

// nil: don't change
// len=0: set empty
func (self *TextDisplay) SetLinesBytes(bs ...[]byte) {
	self.mu.Lock()
	defer self.mu.Unlock()

	for i := 0; i < len(bs) && i < int(self.lines); i++ {
		if bs[i] != nil {
			self.state.L[i] = bs[i]
		}
	}
	atomic.StoreUint32(&self.tick, 0)
	self.flush()
}

func (self *TextDisplay) SetLines(lines ...string) {
	bs := make([][]byte, len(lines))
	for i, s := range lines {
		bs[i] = self.Translate(s)
	}
	self.SetLinesBytes(bs...)
}

// n is zero based.
func (self *TextDisplay) SetLine(n uint32, s string) {
	if n >= self.lines {
		panic(fmt.Sprintf("code error display SetLine n=%d lines=%d", n, self.lines))
	}
	bs := make([][]byte, n+1)
	bs[n] = self.Translate(s)
	self.SetLinesBytes(bs...)
}

func (self *TextDisplay) Tick() {
	self.mu.Lock()
	defer self.mu.Unlock()

	atomic.AddUint32(&self.tick, 1)
	self.flush()
}

func (self *TextDisplay) Run() {
	self.mu.Lock()
	delay := self.tickd
	self.mu.Unlock()
	if delay == 0 {
		return
	}
	tmr := time.NewTicker(delay)
	stopch := self.alive.StopChan()

	for self.alive.IsRunning() {
		select {
		case <-tmr.C:
			self.Tick()
		case <-stopch:
			tmr.Stop()
			return
		}
	}
}

func (self *TextDisplay) Stop() { self.alive.Stop() }

// sometimes returns slice into shared spaceBytes
// sometimes returns `b` (len>=width-1)
// sometimes allocates new buffer
func (self *TextDisplay) JustCenter(b []byte) []byte {
	l := len(b)
	w := int(atomic.LoadUint32(&self.width))

	// optimize short paths
	if l == 0 {
		return spaceBytes[:w]
	}
	if l >= w-1 {
		return b
	}
	padtotal := w - l
	n := padtotal / 2
	padleft := spaceBytes[:n]
	padright := spaceBytes[:n+padtotal%2] // account for odd length
	buf := make([]byte, 0, w)
	buf = append(append(append(buf, padleft...), b...), padright...)
	return buf
}

// returns `b` when len>=width
// otherwise pads with spaces
func (self *TextDisplay) PadRight(b []byte) []byte {
	return PadSpace(b, self.width)
}

func (self *TextDisplay) Translate(s string) []byte {
	if len(s) == 0 {
		return spaceBytes[:0]
	}

	// pad by default, \x00 marks place for cursor
	pad := true
	if s[len(s)-1] == '\x00' {
		pad = false
		s = s[:len(s)-1]
	}

	result := []byte(s)
	tr, ok := self.tr.Load().(charset.Translator)
	if ok && tr != nil {
		_, tb, err := tr.Translate(result, true)
		if err != nil {
			panic(err)
		}
		// translator reuses single internal buffer, make a copy
		result = append([]byte(nil), tb...)
	}

	if pad {
		result = self.PadRight(result)
	}
	return result
}

func (self *TextDisplay) SetUpdateChan(ch chan<- State) {
	self.upd = ch
}

func (self *TextDisplay) State() State { return self.state.Copy() }

func (self *TextDisplay) flush() {
	var buf [MaxLines][MaxWidth]byte
	tick := atomic.LoadUint32(&self.tick)

	for i := uint32(0); i < self.lines; i++ {
		b := buf[i][:self.width]
		n := scrollWrap(b, self.state.L[i], tick)

		// rewrite without clear, looks smoother
		// no padding: "erase" modified area, for now - whole line
		if n < self.width {
			self.dev.CursorYX(uint8(i+1), 1)
			self.dev.Write(spaceBytes[:self.width])
		}
		if len(self.state.L[i]) > 0 {
			self.dev.CursorYX(uint8(i+1), 1)
			self.dev.Write(b[:n])
		}
	}

	if self.upd != nil {
		self.upd <- self.state.Copy()
	}
}

type State struct {
	L [MaxLines][]byte
}

func (s *State) Clear() {
	for i := range s.L {
		s.L[i] = nil
	}
}

func (s State) Copy() State {
	n := State{}
	for i := range s.L {
		n.L[i] = append([]byte(nil), s.L[i]...)
	}
	return n
}

func (s State) Format(width uint32) string {
	buf := make([]byte, 0, (int(width)+1)*MaxLines)
	for i := range s.L {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, PadSpace(s.L[i], width)...)
	}
	return string(buf)
}

func (s State) String() string {
	buf := make([]byte, 0, 128)
	for i := range s.L {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, s.L[i]...)
	}
	return string(buf)
}

func PadSpace(b []byte, width uint32) []byte {
	l := uint32(len(b))

	if l == 0 {
		return spaceBytes[:width]
	}
	if l >= width {
		return b
	}
	buf := make([]byte, 0, width)
	buf = append(append(buf, b...), spaceBytes[:width-l]...)
	return buf
}

// relies that len(buf) == display width
func scrollWrap(buf []byte, content []byte, tick uint32) uint32 {
	length := uint32(len(content))
	width := uint32(len(buf))
	gap := uint32(width / 2)
	n := 0
	if length <= width {
		n = copy(buf, content)
		copy(buf[n:], spaceBytes)
		return uint32(n)
	}

	offset := tick % (length + gap)
	if offset < length {
		n = copy(buf, content[offset:])
	} else {
		gap = gap - (offset - length)
	}
	n += copy(buf[n:], spaceBytes[:gap])
	n += copy(buf[n:], content[0:])
	return uint32(n)
}
