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

//go:build !headless

// Package otoplayer plays the master controller's audio through the host's
// sound device.
package otoplayer

import (
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/glocklueng/thundercracker/curated"
	"github.com/glocklueng/thundercracker/hardware/audio"
)

// OtoPlayer implements the audio.Backend interface.
type OtoPlayer struct {
	ctx    *oto.Context
	player *oto.Player

	// only for setup/control operations. the player reads from the mixer
	// without any help from us
	mutex sync.Mutex
}

// NewOtoPlayer is the preferred method of initialisation for the OtoPlayer
// type. Only one player can be created for the lifetime of the program.
func NewOtoPlayer() (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   audio.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, curated.Errorf("otoplayer: %v", err)
	}
	<-ready

	return &OtoPlayer{
		ctx: ctx,
	}, nil
}

// Start implements the audio.Backend interface.
func (op *OtoPlayer) Start(m *audio.Mixer) error {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.player != nil {
		return nil
	}
	op.player = op.ctx.NewPlayer(m)
	op.player.Play()

	return nil
}

// Close implements the audio.Backend interface.
func (op *OtoPlayer) Close() error {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.player == nil {
		return nil
	}
	err := op.player.Close()
	op.player = nil
	if err != nil {
		return curated.Errorf("otoplayer: %v", err)
	}

	return nil
}
