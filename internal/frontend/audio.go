//go:build !headless

package frontend

import "sync"

// sampleQueue adapts the APU's mono float32 sample stream (spec.md §6's
// audio sink: "polls a float sample buffer and clears it") into the
// 16-bit-stereo-PCM io.Reader that ebiten/audio.Context expects. It never
// returns an error or io.EOF — reads past what the emulator has produced
// so far are filled with silence, since this is a realtime stream with no
// natural end.
type sampleQueue struct {
	mu   sync.Mutex
	data []float32
}

func newSampleQueue() *sampleQueue {
	return &sampleQueue{}
}

// push appends newly generated samples to the queue. Called once per
// Update from the emulator's own goroutine.
func (q *sampleQueue) push(samples []float32) {
	if len(samples) == 0 {
		return
	}
	q.mu.Lock()
	q.data = append(q.data, samples...)
	q.mu.Unlock()
}

// Read implements io.Reader, called from ebiten's audio-mixing goroutine.
func (q *sampleQueue) Read(p []byte) (int, error) {
	frames := len(p) / 4 // 2 channels * 2 bytes/sample

	q.mu.Lock()
	available := len(q.data)
	if available > frames {
		available = frames
	}
	for i := 0; i < available; i++ {
		sample := q.data[i]
		pcm := floatToPCM16(sample)
		p[i*4+0] = uint8(pcm)
		p[i*4+1] = uint8(pcm >> 8)
		p[i*4+2] = uint8(pcm)
		p[i*4+3] = uint8(pcm >> 8)
	}
	q.data = q.data[available:]
	q.mu.Unlock()

	for i := available * 4; i < len(p); i++ {
		p[i] = 0
	}

	return len(p), nil
}

func floatToPCM16(sample float32) int16 {
	if sample > 1 {
		sample = 1
	} else if sample < -1 {
		sample = -1
	}
	return int16(sample * 32767)
}
