//go:build linux

package cpu

import (
	"golang.org/x/sys/unix"
)

// pinToCore pins the current OS thread to a specific CPU core.
// Must be called after runtime.LockOSThread().
func pinToCore(cpuID int) error {
	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	return unix.SchedSetaffinity(0, &mask) // 0 = current thread
}

// currentAffinity reports the cores the current thread may run on.
func currentAffinity() ([]int, error) {
	var mask unix.CPUSet
	if err := unix.SchedGetaffinity(0, &mask); err != nil {
		return nil, err
	}

	cores := make([]int, 0, mask.Count())
	for i := range GetNumCPU() {
		if mask.IsSet(i) {
			cores = append(cores, i)
		}
	}
	return cores, nil
}
