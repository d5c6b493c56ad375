// This file is part of Thundercracker.
//
// Thundercracker is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Thundercracker is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Thundercracker.  If not, see <https://www.gnu.org/licenses/>.

package audio

import (
	"github.com/glocklueng/thundercracker/curated"
	"github.com/glocklueng/thundercracker/environment"
	"github.com/glocklueng/thundercracker/hardware/clocks"
	"github.com/glocklueng/thundercracker/logger"
)

// Backend is the destination of the output device's audio.
type Backend interface {
	Start(m *Mixer) error
	Close() error
}

// Sink is implemented by backends that record audio in simulation time
// rather than real time.
type Sink interface {
	Push(samples []int16) error
}

// OutDevice connects the Mixer to a Backend.
type OutDevice struct {
	env     *environment.Environment
	backend Backend
	mixer   *Mixer

	started bool

	// number of samples given to a Sink backend
	pushed uint64
	buf    []int16
}

// NewOutDevice is the preferred method of initialisation for the OutDevice
// type.
func NewOutDevice(env *environment.Environment, backend Backend) *OutDevice {
	return &OutDevice{
		env:     env,
		backend: backend,
		mixer:   NewMixer(),
	}
}

// Mixer returns the device's tone generator.
func (out *OutDevice) Mixer() *Mixer {
	return out.mixer
}

// Start the backend. Starting an already started device has no effect.
func (out *OutDevice) Start() error {
	if out.started {
		return nil
	}
	if err := out.backend.Start(out.mixer); err != nil {
		return curated.Errorf("audio: %v", err)
	}
	out.started = true
	logger.Logf(out.env, "audio", "started output at %dHz", SampleRate)
	return nil
}

// Update generates the samples for the simulation time up to now and passes
// them to the backend, if it is a Sink. Backends that are not a Sink pull
// samples in real time and Update has no effect.
func (out *OutDevice) Update(now clocks.Ticks) error {
	sink, ok := out.backend.(Sink)
	if !ok || !out.started || now < 0 {
		return nil
	}

	target := uint64(now) * SampleRate / uint64(clocks.MsTicks(1000))
	if target <= out.pushed {
		return nil
	}

	n := int(target - out.pushed)
	if cap(out.buf) < n {
		out.buf = make([]int16, n)
	}
	out.buf = out.buf[:n]
	out.mixer.Samples(out.buf)
	out.pushed = target

	if err := sink.Push(out.buf); err != nil {
		return curated.Errorf("audio: %v", err)
	}
	return nil
}

// Stop closes the backend.
func (out *OutDevice) Stop() error {
	if !out.started {
		return nil
	}
	out.started = false
	if err := out.backend.Close(); err != nil {
		return curated.Errorf("audio: %v", err)
	}
	return nil
}

// Headless is a Backend that discards all audio.
type Headless struct{}

// Start implements the Backend interface.
func (Headless) Start(_ *Mixer) error {
	return nil
}

// Close implements the Backend interface.
func (Headless) Close() error {
	return nil
}
