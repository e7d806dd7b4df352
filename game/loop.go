package game

import "time"

const (
	SpeedSlow   = 1
	SpeedNormal = 10
	SpeedFast   = 100
)

// ToggleFast switches between normal and fast speed.
func ToggleFast(speed int) int {
	if speed == SpeedNormal {
		return SpeedFast
	}
	return SpeedNormal
}

// ToggleSlow switches between slow and normal speed.
func ToggleSlow(speed int) int {
	if speed != SpeedSlow {
		return SpeedSlow
	}
	return SpeedNormal
}

// TickInterval converts ticks per second into the wait between ticks.
func TickInterval(speed int) time.Duration {
	if speed <= 0 {
		speed = SpeedNormal
	}
	return time.Second / time.Duration(speed)
}
