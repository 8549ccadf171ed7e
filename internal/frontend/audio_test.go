//go:build !headless

package frontend

import "testing"

func TestSampleQueueFillsSilenceWhenEmpty(t *testing.T) {
	q := newSampleQueue()
	buf := make([]byte, 16) // 4 frames
	n, err := q.Read(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("Read should always fill the buffer, got n=%d", n)
	}
	for _, b := range buf {
		if b != 0 {
			t.Fatal("an empty queue should read back as silence")
		}
	}
}

func TestSampleQueueConsumesPushedSamples(t *testing.T) {
	q := newSampleQueue()
	q.push([]float32{1.0, -1.0})

	buf := make([]byte, 8) // 2 frames
	q.Read(buf)

	left0 := int16(uint16(buf[0]) | uint16(buf[1])<<8)
	if left0 != 32767 {
		t.Fatalf("first sample = %d, want 32767 (max positive PCM16)", left0)
	}
	left1 := int16(uint16(buf[4]) | uint16(buf[5])<<8)
	if left1 != -32767 {
		t.Fatalf("second sample = %d, want -32767", left1)
	}
}

func TestSampleQueueDuplicatesMonoToStereo(t *testing.T) {
	q := newSampleQueue()
	q.push([]float32{0.5})
	buf := make([]byte, 4)
	q.Read(buf)
	if buf[0] != buf[2] || buf[1] != buf[3] {
		t.Fatal("mono sample should be duplicated to both stereo channels")
	}
}

func TestFloatToPCM16Clamps(t *testing.T) {
	if floatToPCM16(2.0) != 32767 {
		t.Fatal("values above 1.0 should clamp to max positive PCM16")
	}
	if floatToPCM16(-2.0) != -32767 {
		t.Fatal("values below -1.0 should clamp to min negative PCM16")
	}
}
