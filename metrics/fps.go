package metrics

import "time"

// FPSCounter counts frames over one second windows.
type FPSCounter struct {
	now         func() time.Time
	windowStart time.Time
	count       int
	fps         int
}

func NewFPSCounter() *FPSCounter {
	return &FPSCounter{now: time.Now}
}

func (f *FPSCounter) Init() error {
	f.windowStart = f.now()
	f.count = 0
	f.fps = 0
	return nil
}

func (f *FPSCounter) Frame() {
	f.count++

	now := f.now()
	if now.Sub(f.windowStart) >= time.Second {
		f.fps = f.count
		f.count = 0
		f.windowStart = now
	}
}

// Get the frame count of the last completed window.
func (f *FPSCounter) FPS() int {
	return f.fps
}

func (f *FPSCounter) Shutdown() {}
