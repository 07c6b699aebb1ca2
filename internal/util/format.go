package util

import "fmt"

// FormatRate renders a bandwidth figure given in kilobytes per second.
func FormatRate(kbps float32) string {
	if kbps >= 1024 {
		return fmt.Sprintf("%.2f MB/s", kbps/1024)
	}
	return fmt.Sprintf("%.2f KB/s", kbps)
}

// FormatLoss renders a loss ratio in [0, 1] as a percentage.
func FormatLoss(ratio float32) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

func FormatPing(ms float32) string {
	return fmt.Sprintf("%.0fms", ms)
}
