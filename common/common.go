package common

import "runtime"

// GetProcNum returns maxGoRoutines, or the number of CPUs when it is zero.
func GetProcNum(maxGoRoutines uint) uint {
	if maxGoRoutines == 0 {
		return uint(runtime.NumCPU())
	}

	return maxGoRoutines
}

// FanOutDepth returns the number of tree levels whose subtrees can be handed to
// separate goroutines without exceeding procs concurrent builders.
func FanOutDepth(procs uint) int {
	depth := 0
	for width := uint(2); width <= procs; width *= 2 {
		depth++
	}

	return depth
}
