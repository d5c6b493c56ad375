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

// Package audio is the master controller's audio output. The firmware sets
// the frequency of a single tone generator (the Mixer) and the output device
// passes the generated samples to a Backend.
//
// Backends that play audio in real time pull samples from the Mixer as they
// need them. Backends that implement the Sink interface are instead given
// samples as simulation time passes (see OutDevice.Update()).
package audio

import (
	"encoding/binary"
	"sync"
	"sync/atomic"
)

// SampleRate is the number of samples generated per second.
const SampleRate = 16000

// amplitude of the square wave
const amplitude = 0x2000

// Mixer generates signed 16 bit mono samples.
type Mixer struct {
	hz atomic.Int64

	crit  sync.Mutex
	phase uint64
}

// NewMixer is the preferred method of initialisation for the Mixer type.
func NewMixer() *Mixer {
	return &Mixer{}
}

// SetTone sets the frequency of the tone generator. A frequency of zero (or
// less) is silence.
func (m *Mixer) SetTone(hz int) {
	m.hz.Store(int64(max(hz, 0)))
}

// Tone returns the frequency of the tone generator.
func (m *Mixer) Tone() int {
	return int(m.hz.Load())
}

// Samples fills buf with the next samples.
func (m *Mixer) Samples(buf []int16) {
	m.crit.Lock()
	defer m.crit.Unlock()

	hz := uint64(m.hz.Load())
	for i := range buf {
		if hz == 0 {
			buf[i] = 0
		} else if (m.phase*hz*2/SampleRate)&1 == 0 {
			buf[i] = amplitude
		} else {
			buf[i] = -amplitude
		}
		m.phase++
	}
}

// Read implements the io.Reader interface. Samples are encoded as 16 bit
// little-endian values.
func (m *Mixer) Read(p []uint8) (int, error) {
	buf := make([]int16, len(p)/2)
	m.Samples(buf)
	for i, s := range buf {
		binary.LittleEndian.PutUint16(p[i*2:], uint16(s))
	}
	return len(buf) * 2, nil
}
