package app

import "time"

// AvgCount is the number of frames in the moving average.
const AvgCount = 30

// FrameStats tracks a moving average of frame times and frames per second.
type FrameStats struct {
	times   [AvgCount]float64 // ms
	next    int
	filled  bool
	avgMS   float64
	frames  int
	accumMS float64
	fps     float64
	total   int
}

// Update records one frame.
func (s *FrameStats) Update(elapsed time.Duration) {
	ms := float64(elapsed) / float64(time.Millisecond)

	s.times[s.next] = ms
	s.next = (s.next + 1) % AvgCount
	if s.next == 0 {
		s.filled = true
	}
	n := s.next
	if s.filled {
		n = AvgCount
	}
	sum := 0.0
	for _, t := range s.times[:n] {
		sum += t
	}
	s.avgMS = sum / float64(n)

	s.frames++
	s.total++
	s.accumMS += ms
	if s.accumMS >= 1000 {
		s.fps = float64(s.frames) * 1000 / s.accumMS
		s.accumMS = 0
		s.frames = 0
	}
}

// FrameTime returns the average frame time over the last AvgCount frames.
func (s *FrameStats) FrameTime() time.Duration {
	return time.Duration(s.avgMS * float64(time.Millisecond))
}

// FPS returns the frame rate measured over the last full second of render
// time, or zero before a second has accumulated.
func (s *FrameStats) FPS() float64 {
	return s.fps
}

// Frames returns the number of frames recorded.
func (s *FrameStats) Frames() int {
	return s.total
}
