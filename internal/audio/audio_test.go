package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestStreamerLength(t *testing.T) {
	rate := beep.SampleRate(44100)

	for _, e := range Effects() {
		expected := 0
		for _, tn := range Tones(e) {
			expected += rate.N(tn.Duration)
		}
		if got := drain(Streamer(rate, e, 50)); got != expected {
			t.Errorf("Streamer(%v) produced %d samples, expected %d", e, got, expected)
		}
	}
}

func TestStreamerRange(t *testing.T) {
	s := Streamer(beep.SampleRate(8000), PaddleHit, 100)
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", i, buf[i][0])
			}
		}
		if !ok {
			break
		}
	}
}

func TestStreamerMuted(t *testing.T) {
	s := Streamer(beep.SampleRate(8000), Start, 0)
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] != 0 || buf[i][1] != 0 {
				t.Fatalf("sample %d = %v, expected silence", i, buf[i])
			}
		}
		if !ok {
			break
		}
	}
}

func TestEveryEffectHasTones(t *testing.T) {
	for _, e := range Effects() {
		if len(Tones(e)) == 0 {
			t.Errorf("Tones(%v) is empty", e)
		}
		if Duration(e) <= 0 || Duration(e) > time.Second {
			t.Errorf("Duration(%v) = %v, expected (0, 1s]", e, Duration(e))
		}
	}
}

func TestParseEffect(t *testing.T) {
	for _, e := range Effects() {
		got, err := ParseEffect(e.String())
		if err != nil {
			t.Fatalf("ParseEffect(%q) error: %v", e.String(), err)
		}
		if got != e {
			t.Errorf("ParseEffect(%q) = %v, expected %v", e.String(), got, e)
		}
	}
	if _, err := ParseEffect("boom"); err == nil {
		t.Error("ParseEffect(\"boom\") expected error")
	}
}
