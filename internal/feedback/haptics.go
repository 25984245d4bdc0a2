// Package feedback drives a GPIO vibration motor so taps on the sphere have
// a physical response on hardware that carries one. Hosts without the pin
// simply run without haptics; failures here never reach the simulation.
package feedback

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Haptics pulses a single GPIO pin once per fresh tap. Pulses run on their
// own goroutine; Tap never blocks and overlapping taps coalesce.
type Haptics struct {
	pin   gpio.PinIO
	pulse time.Duration

	taps chan struct{}
	done chan struct{}
}

// Open initializes the host drivers and claims the named pin. The name is
// whatever the host registry exposes, e.g. "GPIO18".
func Open(pinName string, pulse time.Duration) (*Haptics, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("feedback: host init: %w", err)
	}
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("feedback: no pin named %q", pinName)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("feedback: reset %s: %w", pinName, err)
	}
	if pulse <= 0 {
		pulse = 30 * time.Millisecond
	}
	h := &Haptics{
		pin:   pin,
		pulse: pulse,
		taps:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	go h.run()
	return h, nil
}

// Tap schedules one pulse. Safe to call from the fresh-tap listener.
func (h *Haptics) Tap() {
	select {
	case h.taps <- struct{}{}:
	default:
	}
}

// Close stops the pulse goroutine and leaves the pin low.
func (h *Haptics) Close() error {
	close(h.done)
	return h.pin.Out(gpio.Low)
}

func (h *Haptics) run() {
	for {
		select {
		case <-h.done:
			return
		case <-h.taps:
			h.pin.Out(gpio.High)
			select {
			case <-h.done:
				h.pin.Out(gpio.Low)
				return
			case <-time.After(h.pulse):
			}
			h.pin.Out(gpio.Low)
		}
	}
}
