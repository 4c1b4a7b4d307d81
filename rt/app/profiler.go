package app

import (
	"fmt"
	"strings"
	"time"
)

// Profiler keeps the CPU time of the last frame's stages and the frame rate.
type Profiler struct {
	Scopes     map[string]time.Duration
	StartTimes map[string]time.Time
	Order      []string

	FrameCount int
	FPS        float64
	fpsStart   float64 // ms
}

func NewProfiler() *Profiler {
	return &Profiler{
		Scopes:     make(map[string]time.Duration),
		StartTimes: make(map[string]time.Time),
		fpsStart:   -1,
	}
}

func (p *Profiler) BeginScope(name string) {
	p.StartTimes[name] = time.Now()
	for _, n := range p.Order {
		if n == name {
			return
		}
	}
	p.Order = append(p.Order, name)
}

func (p *Profiler) EndScope(name string) {
	if start, ok := p.StartTimes[name]; ok {
		p.Scopes[name] = time.Since(start)
	}
}

// Frame counts a finished frame at now (ms) and reports true once per second,
// when FPS has been refreshed.
func (p *Profiler) Frame(now float64) bool {
	if p.fpsStart < 0 {
		p.fpsStart = now
		return false
	}
	p.FrameCount++
	elapsed := now - p.fpsStart
	if elapsed < 1000 {
		return false
	}
	p.FPS = float64(p.FrameCount) * 1000 / elapsed
	p.FrameCount = 0
	p.fpsStart = now
	return true
}

func (p *Profiler) GetStatsString() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("fps=%.1f", p.FPS))
	for _, name := range p.Order {
		ms := float64(p.Scopes[name].Microseconds()) / 1000.0
		sb.WriteString(fmt.Sprintf(" %s=%.2fms", name, ms))
	}
	return sb.String()
}
