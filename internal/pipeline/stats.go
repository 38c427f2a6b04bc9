package pipeline

// RunStats aggregates a batch run for the summary line and the exit code.
type RunStats struct {
	Total     int // Files queued after discovery.
	Done      int // Files that reached a terminal outcome.
	Converted int
	Failed    int

	InputBytes  int64 // Source bytes of converted files.
	OutputBytes int64 // Produced bytes of converted files.
}

// SpaceSaved is the net byte reduction across converted files. Negative when
// outputs grew, which the summary reports as-is.
func (s *RunStats) SpaceSaved() int64 {
	return s.InputBytes - s.OutputBytes
}
