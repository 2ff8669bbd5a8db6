// Battery-backed wall clock for the terminal. The device keeps working
// without network, so the time source is a chip on the I2C bus, with
// the OS clock as fallback for development machines.
package rtc

import "time"

type Clocker interface {
	Now() (time.Time, error)
}

type Config struct {
	Enable bool   `hcl:"enable"`
	Bus    string `hcl:"bus"`
	Addr   int    `hcl:"i2c_addr"`
}

// OS clock. Used when the chip is disabled in config and in tests.
type SystemClock struct{}

var _ Clocker = SystemClock{}

func (SystemClock) Now() (time.Time, error) { return time.Now(), nil }

// Fixed clock for tests.
type MockClock struct{ T time.Time }

var _ Clocker = &MockClock{}

func (m *MockClock) Now() (time.Time, error) { return m.T, nil }
