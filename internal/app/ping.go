//go:build ebiten

package app

import (
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	pingSampleRate = 48000
	pingFrequency  = 520.0
	// Per-sample envelope decay; rings out in roughly a quarter second.
	pingDecay = 0.9996
)

// tapPing is an infinite 16-bit stereo stream that stays silent until
// triggered, then rings a decaying sine. It feeds an ebiten audio player;
// Trigger is called from the fresh-tap listener.
type tapPing struct {
	mu    sync.Mutex
	phase float64
	env   float64

	player *audio.Player
}

func newTapPing() (*tapPing, error) {
	p := &tapPing{}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(pingSampleRate)
	}
	player, err := ctx.NewPlayer(p)
	if err != nil {
		return nil, err
	}
	p.player = player
	player.Play()
	return p, nil
}

// Trigger restarts the envelope. Retriggering an active ping just snaps it
// back to full volume.
func (p *tapPing) Trigger() {
	p.mu.Lock()
	p.env = 1
	p.mu.Unlock()
}

// Read synthesizes whole stereo frames (4 bytes per frame).
func (p *tapPing) Read(buf []byte) (int, error) {
	frameBytes := len(buf) - len(buf)%4
	if frameBytes == 0 {
		return 0, nil
	}

	p.mu.Lock()
	phase := p.phase
	env := p.env
	p.mu.Unlock()

	step := 2 * math.Pi * pingFrequency / pingSampleRate
	for i := 0; i < frameBytes; i += 4 {
		var v int16
		if env > 0.001 {
			v = int16(math.Sin(phase) * env * 12000)
			env *= pingDecay
		}
		phase += step
		if phase > 2*math.Pi {
			phase -= 2 * math.Pi
		}
		buf[i] = byte(v)
		buf[i+1] = byte(v >> 8)
		buf[i+2] = buf[i]
		buf[i+3] = buf[i+1]
	}

	p.mu.Lock()
	p.phase = phase
	if env <= 0.001 {
		env = 0
	}
	p.env = env
	p.mu.Unlock()

	return frameBytes, nil
}

func (p *tapPing) Close() error { return nil }
