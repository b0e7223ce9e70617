//go:build windows

package target

import "fmt"

// findProcessByName reports no processes on Windows; reload signals are
// not supported there, so hooks that depend on them are skipped.
func findProcessByName(string) ([]int, error) {
	return nil, fmt.Errorf("process signalling is not supported on Windows")
}

func signalReload(int) error {
	return fmt.Errorf("process signalling is not supported on Windows")
}
