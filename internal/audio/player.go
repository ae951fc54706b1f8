package audio

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player plays sound effects. Play must never block the caller.
type Player interface {
	Play(e Effect)
}

// Silent discards every request.
type Silent struct{}

// Play does nothing.
func (Silent) Play(Effect) {}

// Options configures a BeepPlayer.
type Options struct {
	SampleRate int
	Volume     int
	Workers    int
	QueueSize  int
	Logger     *log.Logger
}

// BeepPlayer plays effects through the system speaker.
// Requests go through a bounded queue drained by worker goroutines; a full
// queue drops the request.
type BeepPlayer struct {
	rate   beep.SampleRate
	volume atomic.Int32
	queue  chan Effect
	logger *log.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewBeepPlayer initialises the speaker and starts the workers.
func NewBeepPlayer(opts Options) (*BeepPlayer, error) {
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 8
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	rate := beep.SampleRate(opts.SampleRate)
	if err := speaker.Init(rate, rate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}

	p := &BeepPlayer{
		rate:   rate,
		queue:  make(chan Effect, opts.QueueSize),
		logger: opts.Logger,
	}
	p.SetVolume(opts.Volume)

	for range opts.Workers {
		p.wg.Add(1)
		go p.worker()
	}
	return p, nil
}

// SetVolume changes the volume (0-100) for effects started afterwards.
func (p *BeepPlayer) SetVolume(v int) {
	p.volume.Store(int32(max(0, min(v, 100))))
}

// Volume returns the current volume.
func (p *BeepPlayer) Volume() int {
	return int(p.volume.Load())
}

// Play queues an effect, dropping it when the queue is full or the player is
// closed.
func (p *BeepPlayer) Play(e Effect) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.dropped.Add(1)
		return
	}
	select {
	case p.queue <- e:
	default:
		p.dropped.Add(1)
		p.logger.Debug("sound dropped", "effect", e)
	}
}

// Played returns how many effects finished playing.
func (p *BeepPlayer) Played() uint64 {
	return p.played.Load()
}

// Dropped returns how many requests were discarded.
func (p *BeepPlayer) Dropped() uint64 {
	return p.dropped.Load()
}

// Close stops accepting requests, waits for queued effects and closes the
// speaker.
func (p *BeepPlayer) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	speaker.Clear()
	speaker.Close()
}

func (p *BeepPlayer) worker() {
	defer p.wg.Done()
	for e := range p.queue {
		done := make(chan struct{})
		s := Streamer(p.rate, e, p.Volume())
		speaker.Play(beep.Seq(s, beep.Callback(func() { close(done) })))
		<-done
		p.played.Add(1)
	}
}
