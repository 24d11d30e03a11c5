//go:build !linux && !darwin && !windows

package cpu

func pinToCore(int) error {
	return ErrPinningUnsupported
}

func currentAffinity() ([]int, error) {
	return nil, ErrPinningUnsupported
}
