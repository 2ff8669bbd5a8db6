package fingerprint

import (
	"os"
	"syscall"
	"time"
	"unsafe"

	"github.com/juju/errors"
	"golang.org/x/sys/unix"
)

const (
	cFIONREAD = 0x541b
	cNCCS     = 19
	cTCSETSF2 = 0x402c542d
	cTCFLSH   = 0x540b
)

type ErrTimeoutT string

func (e ErrTimeoutT) Error() string { return string(e) }
func (ErrTimeoutT) Timeout() bool   { return true }

type cc_t byte
type speed_t uint32
type tcflag_t uint32
type termios2 struct {
	c_iflag  tcflag_t
	c_oflag  tcflag_t
	c_cflag  tcflag_t
	c_lflag  tcflag_t
	c_line   cc_t
	c_cc     [cNCCS]cc_t
	c_ispeed speed_t
	c_ospeed speed_t
}

var baudFlag = map[int]speed_t{
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
}

type fdReader struct {
	fd      uintptr
	timeout time.Duration
}

func (self fdReader) Read(p []byte) (n int, err error) {
	err = io_wait_read(self.fd, 1, self.timeout)
	if err != nil {
		return 0, err
	}
	return syscall.Read(int(self.fd), p)
}

func ioctl(fd uintptr, op, arg uintptr) (err error) {
	r, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, op, arg)
	if errno != 0 {
		err = os.NewSyscallError("SYS_IOCTL", errno)
	} else if r != 0 {
		err = errors.Errorf("unknown error from SYS_IOCTL op=%x", op)
	}
	return err
}

func io_wait_read(fd uintptr, min int, wait time.Duration) error {
	var err error
	var out int
	tbegin := time.Now()
	tfinal := tbegin.Add(wait)
	for {
		err = ioctl(fd, uintptr(cFIONREAD), uintptr(unsafe.Pointer(&out)))
		if err != nil {
			return err
		}
		if out >= min {
			return nil
		}
		time.Sleep(wait / 16)
		if time.Now().After(tfinal) {
			return ErrTimeoutT("io_wait_read timeout")
		}
	}
}

// Sensor talks 8N1, only the rate is configurable.
func io_reset_termios(fd uintptr, t2 *termios2, baud int) error {
	speed, ok := baudFlag[baud]
	if !ok {
		return errors.NotValidf("baud=%d", baud)
	}
	*t2 = termios2{
		c_iflag:  unix.IGNBRK,
		c_cflag:  syscall.CLOCAL | syscall.CREAD | syscall.CS8 | tcflag_t(speed),
		c_ispeed: speed,
		c_ospeed: speed,
	}
	t2.c_cc[syscall.VMIN] = 0
	return ioctl(fd, uintptr(cTCSETSF2), uintptr(unsafe.Pointer(t2)))
}

// flush pending input and output
func io_flush(fd uintptr) error {
	return ioctl(fd, uintptr(cTCFLSH), uintptr(unix.TCIOFLUSH))
}
