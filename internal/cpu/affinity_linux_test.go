//go:build linux

package cpu

import "testing"

func TestLockWorkerThread_PinsOnLinux(t *testing.T) {
	type outcome struct {
		core    int
		pinErr  error
		cores   []int
		readErr error
	}

	res := make(chan outcome, 1)
	go func() {
		release, core, err := LockWorkerThread(0, true)
		defer release()

		o := outcome{core: core, pinErr: err}
		if err == nil {
			o.cores, o.readErr = currentAffinity()
		}
		res <- o
	}()

	o := <-res
	if o.pinErr != nil {
		// restricted cpusets in containers may refuse the mask
		t.Skipf("pinning refused: %v", o.pinErr)
	}
	if o.readErr != nil {
		t.Fatalf("reading affinity: %v", o.readErr)
	}
	if len(o.cores) != 1 || o.cores[0] != o.core {
		t.Errorf("expected affinity [%d], got %v", o.core, o.cores)
	}
}
