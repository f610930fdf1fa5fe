package core

import "github.com/spaghettifunk/wireframe/engine/containers"

const AVG_COUNT int = 30

// Metrics keeps a rolling frame time average and a frames-per-second counter.
type Metrics struct {
	frameTimes         *containers.RingQueue[float64]
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
	totalFrames        uint64
}

func NewMetrics() *Metrics {
	return &Metrics{
		frameTimes: containers.NewRingQueue[float64](AVG_COUNT),
	}
}

// Update records a frame that took frameElapsedTime seconds.
func (ms *Metrics) Update(frameElapsedTime float64) {
	frameMS := frameElapsedTime * 1000.0
	if ms.frameTimes.IsFull() {
		_, _ = ms.frameTimes.Dequeue()
	}
	_ = ms.frameTimes.Enqueue(frameMS)

	sum := 0.0
	ms.frameTimes.Each(func(v float64) {
		sum += v
	})
	ms.msAvg = sum / float64(ms.frameTimes.Len())

	// Calculate frames per second.
	ms.accumulatedFrameMS += frameMS
	if ms.accumulatedFrameMS > 1000 {
		ms.fps = float64(ms.frames)
		ms.accumulatedFrameMS -= 1000
		ms.frames = 0
	}

	ms.frames++
	ms.totalFrames++
}

func (ms *Metrics) FPS() float64 {
	return ms.fps
}

func (ms *Metrics) FrameTime() float64 {
	return ms.msAvg
}

func (ms *Metrics) Frame() (float64, float64) {
	return ms.fps, ms.msAvg
}

func (ms *Metrics) TotalFrames() uint64 {
	return ms.totalFrames
}
