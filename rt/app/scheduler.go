package app

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// FrameFunc runs one loop iteration at now, in milliseconds of monotonic time.
type FrameFunc func(now float64) error

// Scheduler calls a FrameFunc once per tick until it stops or a frame fails.
type Scheduler interface {
	Run(frame FrameFunc) error
}

// WindowScheduler ticks once per glfw event poll. The surface uses Fifo
// presentation, so ticks are paced by vsync.
type WindowScheduler struct {
	Window *glfw.Window
}

func (s *WindowScheduler) Run(frame FrameFunc) error {
	for !s.Window.ShouldClose() {
		glfw.PollEvents()
		if err := frame(NowMs()); err != nil {
			return err
		}
	}
	return nil
}

// NowMs is the glfw timer in milliseconds.
func NowMs() float64 {
	return glfw.GetTime() * 1000
}

// ManualScheduler replays fixed timestamps, one frame each.
type ManualScheduler struct {
	Timestamps []float64
	// BeforeFrame, if set, runs before frame i. Tests use it to inject input.
	BeforeFrame func(i int)
}

func (s *ManualScheduler) Run(frame FrameFunc) error {
	for i, now := range s.Timestamps {
		if s.BeforeFrame != nil {
			s.BeforeFrame(i)
		}
		if err := frame(now); err != nil {
			return err
		}
	}
	return nil
}
