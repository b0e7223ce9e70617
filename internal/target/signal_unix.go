//go:build unix

package target

import (
	"fmt"
	"syscall"

	"github.com/mitchellh/go-ps"
)

// findProcessByName returns the PIDs of all processes whose executable
// matches name.
func findProcessByName(name string) ([]int, error) {
	processes, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to get process list: %w", err)
	}

	var pids []int
	for _, p := range processes {
		if p.Executable() == name {
			pids = append(pids, p.Pid())
		}
	}

	return pids, nil
}

// signalReload asks a process to re-read its configuration.
func signalReload(pid int) error {
	return syscall.Kill(pid, syscall.SIGHUP)
}
