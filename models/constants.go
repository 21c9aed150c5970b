package models

// ✅ Ward partitions a top-level post can belong to (replies carry an empty ward)
const (
	Ward1st   = "1st"
	Ward2nd   = "2nd"
	WardOther = "other"
)

// ✅ Clock directions (in, out)
const (
	ClockIn  = "in"
	ClockOut = "out"
)

// ClockSourceScanned marks events produced by the scanned-input screen
const ClockSourceScanned = "scanned-input"

// IsValidWard reports whether ward is one of the known partitions.
func IsValidWard(ward string) bool {
	switch ward {
	case Ward1st, Ward2nd, WardOther:
		return true
	}
	return false
}

// IsValidClockDirection reports whether direction is "in" or "out".
func IsValidClockDirection(direction string) bool {
	return direction == ClockIn || direction == ClockOut
}
