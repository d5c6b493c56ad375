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

package mc

import (
	"sync"
	"sync/atomic"

	"github.com/glocklueng/thundercracker/assert"
	"github.com/glocklueng/thundercracker/curated"
	"github.com/glocklueng/thundercracker/environment"
	"github.com/glocklueng/thundercracker/hardware/clocks"
	"github.com/glocklueng/thundercracker/logger"
	"github.com/glocklueng/thundercracker/notifications"
)

// timing of the simulation in ticks of the clocks.TickHZ clock
const (
	// the time taken by a single radio packet delivery attempt (450us)
	TicksPerPacket = clocks.TickHZ / 1000000 * 450

	// the master controller starts some time after the cubes
	StartupDelay = clocks.TickHZ / 4
)

// Sentinal errors.
const (
	StopRequested  = "mc: stop requested"
	AlreadyRunning = "mc: already running"
	NoComponent    = "mc: no %s component"
)

// Components are the collaborators of the master controller. Only Notify
// may be nil.
type Components struct {
	Radio  RadioManager
	Cubes  []Peripheral
	Sync   Sync
	Loader Loader
	Tasks  Tasks
	Audio  AudioOut
	Flash  FlashDevice
	Cache  BlockCache
	Notify notifications.Notify
}

// MC is the master controller simulation.
type MC struct {
	env *environment.Environment

	radio  RadioManager
	cubes  []Peripheral
	sync   Sync
	loader Loader
	tasks  Tasks
	audio  AudioOut
	flash  FlashDevice
	cache  BlockCache
	notify notifications.Notify

	// running is read by the simulation goroutine on every delivery attempt
	running atomic.Bool

	// the master controller's clock. only the simulation goroutine writes to
	// the clock
	ticks atomic.Uint64

	// the ID of the current simulation goroutine. zero if the goroutine has
	// never been started
	goroutineID atomic.Uint64

	// audio is started only once for the lifetime of the MC
	audioStarted bool

	// serialises Start(), Stop() and InstallImage()
	crit sync.Mutex

	// closed when the simulation goroutine ends
	done chan struct{}
}

// NewMC is the preferred method of initialisation for the MC type. Optional
// capabilities of the components are enabled according to the preferences
// in the environment.
func NewMC(env *environment.Environment, c Components) (*MC, error) {
	switch {
	case c.Radio == nil:
		return nil, curated.Errorf(NoComponent, "radio")
	case c.Sync == nil:
		return nil, curated.Errorf(NoComponent, "sync")
	case c.Loader == nil:
		return nil, curated.Errorf(NoComponent, "loader")
	case c.Tasks == nil:
		return nil, curated.Errorf(NoComponent, "tasks")
	case c.Audio == nil:
		return nil, curated.Errorf(NoComponent, "audio")
	case c.Flash == nil:
		return nil, curated.Errorf(NoComponent, "flash")
	case c.Cache == nil:
		return nil, curated.Errorf(NoComponent, "cache")
	}

	mc := &MC{
		env:    env,
		radio:  c.Radio,
		cubes:  c.Cubes,
		sync:   c.Sync,
		loader: c.Loader,
		tasks:  c.Tasks,
		audio:  c.Audio,
		flash:  c.Flash,
		cache:  c.Cache,
		notify: c.Notify,
	}

	if env.Prefs.SVMTrace.Get().(bool) {
		if t, ok := mc.loader.(Tracer); ok {
			t.EnableTracing()
		}
	}
	if env.Prefs.FlashStats.Get().(bool) {
		if s, ok := mc.cache.(StatsEnabler); ok {
			s.EnableStats()
		}
	}
	if env.Prefs.StackMonitor.Get().(bool) {
		if s, ok := mc.loader.(StackMonitor); ok {
			s.EnableStackMonitoring()
		}
	}

	return mc, nil
}

// Start the simulation goroutine. It is an error to start an MC that is
// already running.
func (mc *MC) Start() error {
	mc.crit.Lock()
	defer mc.crit.Unlock()
	return mc.start()
}

func (mc *MC) start() error {
	if mc.running.Load() {
		return curated.Errorf(AlreadyRunning)
	}

	// the running flag must be visible to the new goroutine before it
	// starts
	mc.running.Store(true)

	mc.done = make(chan struct{})
	go mc.thread(mc.done)

	return nil
}

// Stop the simulation goroutine and wait for it to end. Stopping an MC that
// is not running has no effect.
//
// Stop must not be called from the simulation goroutine.
func (mc *MC) Stop() {
	mc.crit.Lock()
	defer mc.crit.Unlock()
	mc.stop()
}

func (mc *MC) stop() {
	if !mc.running.CompareAndSwap(true, false) {
		return
	}

	// the simulation goroutine may be waiting for the cubes
	mc.sync.Wake()

	<-mc.done
	mc.done = nil

	mc.sendNotification(notifications.NotifyStopped)
}

// Exit is called when the program is ending. There is nothing for the MC
// to release.
func (mc *MC) Exit() {
}

// IsRunning returns true if the simulation goroutine is running.
func (mc *MC) IsRunning() bool {
	return mc.running.Load()
}

// Ticks implements the Host interface.
func (mc *MC) Ticks() clocks.Ticks {
	return clocks.FromTicks(mc.ticks.Load())
}

// Clock returns the raw value of the master controller's clock, in ticks of
// the clocks.TickHZ clock.
func (mc *MC) Clock() uint64 {
	return mc.ticks.Load()
}

func (mc *MC) sendNotification(notice notifications.Notice) {
	if mc.notify == nil {
		return
	}
	err := mc.notify.Notify(notice)
	if err != nil {
		logger.Log(mc.env, "mc", err)
	}
}

// thread is the body of the simulation goroutine
func (mc *MC) thread(done chan struct{}) {
	defer close(done)

	mc.goroutineID.Store(assert.GetGoRoutineID())

	// start the master at some point shortly after the cubes come up. the
	// clock is never allowed to go backwards
	seed := mc.sync.Clocks() + StartupDelay
	if seed > mc.ticks.Load() {
		mc.ticks.Store(seed)
	}

	if !mc.audioStarted {
		mc.audioStarted = true
		if err := mc.audio.Start(); err != nil {
			logger.Log(mc.env, "mc", err)
		}
	}

	err := mc.loader.Run(mc, mc.env.Prefs.EntryParam.Get().(int))
	if curated.Is(err, StopRequested) {
		return
	}
	if err != nil {
		logger.Logf(mc.env, "mc", "firmware exited: %v", err)
	} else {
		logger.Log(mc.env, "mc", "firmware exited")
	}
	mc.sendNotification(notifications.NotifyFirmwareExited)

	// without firmware we can at least keep the cubes running
	for {
		mc.tasks.Work()
		if err := mc.Halt(); err != nil {
			return
		}
	}
}
