//go:build windows

package cpu

import (
	"golang.org/x/sys/windows"
)

var (
	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
)

// pinToCore pins the current OS thread to a specific CPU core.
// Must be called after runtime.LockOSThread().
func pinToCore(cpuID int) error {
	// Bit N = CPU N, so for CPU 0 it's 1, for CPU 1 it's 2, etc.
	mask := uintptr(1) << uint(cpuID)

	prevMask, _, err := setThreadAffinityMask.Call(uintptr(windows.CurrentThread()), mask)
	if prevMask == 0 {
		return err
	}
	return nil
}

func currentAffinity() ([]int, error) {
	return nil, ErrPinningUnsupported
}
