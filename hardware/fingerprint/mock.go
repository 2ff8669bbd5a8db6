package fingerprint

// Public API to create sensor stubs for code under test.

import (
	"sync"
)

// MockSensor keeps the template library in memory and plays back
// scripted capture/search outcomes. Zero value is usable: every
// capture succeeds and every search misses.
type MockSensor struct {
	lk        sync.Mutex
	templates [MaxSlots]bool
	captures  []error // consumed by CaptureImage, then nil forever
	searches  []searchResult
	buffered  uint8 // ToTemplate calls since last BuildModel
	modeled   bool
	buildErr  error
	emptyErr  error
}

type searchResult struct {
	slot uint8
	err  error
}

func NewMockSensor() *MockSensor { return &MockSensor{} }

// Next CaptureImage calls return errs in order, nil after.
func (self *MockSensor) ScriptCapture(errs ...error) {
	self.lk.Lock()
	defer self.lk.Unlock()
	self.captures = append(self.captures, errs...)
}

// Next Search call returns (slot, err).
func (self *MockSensor) ScriptSearch(slot uint8, err error) {
	self.lk.Lock()
	defer self.lk.Unlock()
	self.searches = append(self.searches, searchResult{slot: slot, err: err})
}

// Next BuildModel call returns err, once.
func (self *MockSensor) ScriptBuild(err error) {
	self.lk.Lock()
	defer self.lk.Unlock()
	self.buildErr = err
}

// Next EmptyLibrary call returns err, once, leaving templates in place.
func (self *MockSensor) ScriptEmpty(err error) {
	self.lk.Lock()
	defer self.lk.Unlock()
	self.emptyErr = err
}

func (self *MockSensor) SetTemplate(slot uint8, present bool) {
	self.lk.Lock()
	defer self.lk.Unlock()
	self.templates[slot] = present
}

func (self *MockSensor) HasTemplate(slot uint8) bool {
	self.lk.Lock()
	defer self.lk.Unlock()
	return self.templates[slot]
}

func (self *MockSensor) TemplateExists(slot uint8) (bool, error) {
	if slot >= MaxSlots {
		return false, statusToError(StatusBadLocation)
	}
	self.lk.Lock()
	defer self.lk.Unlock()
	return self.templates[slot], nil
}

func (self *MockSensor) CaptureImage() error {
	self.lk.Lock()
	defer self.lk.Unlock()
	if len(self.captures) == 0 {
		return nil
	}
	err := self.captures[0]
	self.captures = self.captures[1:]
	return err
}

func (self *MockSensor) ToTemplate(buffer uint8) error {
	self.lk.Lock()
	defer self.lk.Unlock()
	self.buffered++
	return nil
}

func (self *MockSensor) BuildModel() error {
	self.lk.Lock()
	defer self.lk.Unlock()
	if self.buildErr != nil {
		err := self.buildErr
		self.buildErr = nil
		self.buffered = 0
		return err
	}
	if self.buffered < 2 {
		return statusToError(StatusFeatureFail)
	}
	self.buffered = 0
	self.modeled = true
	return nil
}

func (self *MockSensor) StoreModel(slot uint8) error {
	if slot >= MaxSlots {
		return statusToError(StatusBadLocation)
	}
	self.lk.Lock()
	defer self.lk.Unlock()
	if !self.modeled {
		return statusToError(StatusFlashError)
	}
	self.modeled = false
	self.templates[slot] = true
	return nil
}

func (self *MockSensor) DeleteModel(slot uint8) error {
	if slot >= MaxSlots {
		return statusToError(StatusBadLocation)
	}
	self.lk.Lock()
	defer self.lk.Unlock()
	self.templates[slot] = false
	return nil
}

func (self *MockSensor) EmptyLibrary() error {
	self.lk.Lock()
	defer self.lk.Unlock()
	if err := self.emptyErr; err != nil {
		self.emptyErr = nil
		return err
	}
	self.templates = [MaxSlots]bool{}
	self.buffered = 0
	self.modeled = false
	return nil
}

func (self *MockSensor) Search() (uint8, error) {
	self.lk.Lock()
	defer self.lk.Unlock()
	if len(self.searches) == 0 {
		return 0, ErrNotFound
	}
	r := self.searches[0]
	self.searches = self.searches[1:]
	return r.slot, r.err
}
