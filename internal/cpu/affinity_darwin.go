//go:build darwin

package cpu

// pinToCore is unavailable on macOS; threads stay locked but unpinned.
func pinToCore(int) error {
	return ErrPinningUnsupported
}

func currentAffinity() ([]int, error) {
	return nil, ErrPinningUnsupported
}
