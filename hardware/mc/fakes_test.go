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

package mc_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glocklueng/thundercracker/environment"
	"github.com/glocklueng/thundercracker/hardware/mc"
	"github.com/glocklueng/thundercracker/hardware/preferences"
	"github.com/glocklueng/thundercracker/hardware/radio"
	"github.com/glocklueng/thundercracker/hardware/vram"
	"github.com/glocklueng/thundercracker/notifications"
	"github.com/glocklueng/thundercracker/test"
)

// recording implementations of the MC's components. with the exception of
// the fields that are atomic, the fields should only be inspected once the
// simulation goroutine has been stopped

type fakeSync struct {
	clocks  uint64
	inEvent bool

	begins []uint64
	ends   []uint64

	// number of times an event window was opened or closed out of turn
	violations int

	wakes atomic.Int32

	// when hold is set the next event window does not open until Wake() is
	// called. held is signalled when the window is waiting. both channels
	// must be created before hold is set
	hold    atomic.Bool
	held    chan bool
	release chan bool
}

func (s *fakeSync) BeginEventAt(tick uint64, _ bool) {
	if s.hold.CompareAndSwap(true, false) {
		s.held <- true
		<-s.release
	}
	if s.inEvent {
		s.violations++
	}
	s.inEvent = true
	s.begins = append(s.begins, tick)
}

func (s *fakeSync) EndEvent(tick uint64) {
	if !s.inEvent {
		s.violations++
	}
	s.inEvent = false
	s.ends = append(s.ends, tick)
}

func (s *fakeSync) Wake() {
	s.wakes.Add(1)
	if s.release != nil {
		select {
		case s.release <- true:
		default:
		}
	}
}

func (s *fakeSync) Clocks() uint64 {
	return s.clocks
}

type fakeCube struct {
	id   int
	addr radio.Address
	sync *fakeSync

	// number of packets to drop before acknowledging. a negative value
	// means the cube never acknowledges
	drop  int
	reply radio.Packet

	calls int

	// number of packets delivered outside of an event window
	outsideWindow int

	vram [vram.Bytes]uint8
}

func (c *fakeCube) ID() int {
	return c.id
}

func (c *fakeCube) PackedRXAddr() uint64 {
	return c.addr.Pack()
}

func (c *fakeCube) HandlePacket(_ radio.Packet) (bool, radio.Packet) {
	c.calls++
	if !c.sync.inEvent {
		c.outsideWindow++
	}
	if c.drop < 0 || c.calls <= c.drop {
		return false, radio.Packet{}
	}
	return true, c.reply
}

func (c *fakeCube) VRAM() []uint8 {
	return c.vram[:]
}

type fakeRadio struct {
	// a nil destination is a contract violation
	dest   *radio.Address
	packet radio.Packet

	produced  atomic.Int32
	empty     int
	timeouts  int
	withReply []radio.Packet
}

func (r *fakeRadio) Produce(tx *radio.Transmission) {
	r.produced.Add(1)
	tx.Dest = r.dest
	tx.Packet = r.packet
}

func (r *fakeRadio) AckWithPacket(reply radio.Packet) {
	r.withReply = append(r.withReply, reply)
}

func (r *fakeRadio) AckEmpty() {
	r.empty++
}

func (r *fakeRadio) Timeout() {
	r.timeouts++
}

type fakeTasks struct {
	work atomic.Int32
}

func (t *fakeTasks) Work() {
	t.work.Add(1)
}

type fakeAudio struct {
	starts atomic.Int32
}

func (a *fakeAudio) Start() error {
	a.starts.Add(1)
	return nil
}

type write struct {
	addr uint32
	n    int
}

type fakeFlash struct {
	erased int
	writes []write
	data   []uint8

	// writes at or beyond this address fail. zero means never
	failAt uint32
}

func (f *fakeFlash) ChipErase() {
	f.erased++
	f.data = f.data[:0]
}

func (f *fakeFlash) Write(addr uint32, data []uint8) error {
	if f.failAt != 0 && addr >= f.failAt {
		return errFlash
	}
	f.writes = append(f.writes, write{addr: addr, n: len(data)})
	f.data = append(f.data, data...)
	return nil
}

type flashError struct{}

func (flashError) Error() string {
	return "flash failure"
}

var errFlash = flashError{}

type fakeCache struct {
	invalidated int
	stats       bool
}

func (c *fakeCache) Invalidate() {
	c.invalidated++
}

func (c *fakeCache) EnableStats() {
	c.stats = true
}

type fakeNotify struct {
	crit    sync.Mutex
	notices []notifications.Notice
}

func (n *fakeNotify) Notify(notice notifications.Notice) error {
	n.crit.Lock()
	defer n.crit.Unlock()
	n.notices = append(n.notices, notice)
	return nil
}

func (n *fakeNotify) count(notice notifications.Notice) int {
	n.crit.Lock()
	defer n.crit.Unlock()
	var c int
	for _, v := range n.notices {
		if v == notice {
			c++
		}
	}
	return c
}

type fakeSlot struct {
	id   int
	addr radio.Address
	buf  *vram.Buffer
}

func (s *fakeSlot) ID() int {
	return s.id
}

func (s *fakeSlot) RadioAddress() *radio.Address {
	return &s.addr
}

func (s *fakeSlot) VideoBuffer() *vram.Buffer {
	return s.buf
}

// loaderFunc allows a function to be used as an mc.Loader
type loaderFunc func(host mc.Host, param int) error

func (f loaderFunc) Run(host mc.Host, param int) error {
	return f(host, param)
}

// waitForStop waits until the MC has been told to stop and then returns the
// StopRequested error from Halt(). no radio transactions take place while
// waiting
func waitForStop(host mc.Host) error {
	r := host.(interface{ IsRunning() bool })
	for r.IsRunning() {
		time.Sleep(time.Millisecond)
	}
	return host.Halt()
}

// eventually fails the test if the condition is not met within a few seconds
func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(time.Millisecond)
	}
}

type harness struct {
	env    *environment.Environment
	radio  *fakeRadio
	cubes  []*fakeCube
	sync   *fakeSync
	tasks  *fakeTasks
	audio  *fakeAudio
	flash  *fakeFlash
	cache  *fakeCache
	notify *fakeNotify
	mc     *mc.MC
}

// newHarness creates an MC with three cubes. The radio sends packets to the
// first cube, which acknowledges every packet with an empty ACK.
func newHarness(t *testing.T, loader mc.Loader) *harness {
	t.Helper()

	p, err := preferences.NewDetachedPreferences()
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainSimulation, p)
	test.DemandSuccess(t, err)

	h := &harness{
		env:    env,
		sync:   &fakeSync{},
		tasks:  &fakeTasks{},
		audio:  &fakeAudio{},
		flash:  &fakeFlash{},
		cache:  &fakeCache{},
		notify: &fakeNotify{},
	}

	var cubes []mc.Peripheral
	for i := range 3 {
		c := &fakeCube{id: i, addr: radio.DefaultAddress(i), sync: h.sync}
		h.cubes = append(h.cubes, c)
		cubes = append(cubes, c)
	}

	h.radio = &fakeRadio{
		dest:   &h.cubes[0].addr,
		packet: radio.NewPacket([]uint8{0x12, 0x34, 0x56}),
	}

	h.mc, err = mc.NewMC(env, mc.Components{
		Radio:  h.radio,
		Cubes:  cubes,
		Sync:   h.sync,
		Loader: loader,
		Tasks:  h.tasks,
		Audio:  h.audio,
		Flash:  h.flash,
		Cache:  h.cache,
		Notify: h.notify,
	})
	test.DemandSuccess(t, err)

	return h
}

// run starts the MC and waits for the loader to signal on the channel. the
// MC is then stopped
func (h *harness) run(t *testing.T, done chan error) error {
	t.Helper()
	test.DemandSuccess(t, h.mc.Start())
	var err error
	select {
	case err = <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("loader did not finish in time")
	}
	h.mc.Stop()
	return err
}

// script returns a loader that calls Halt() n times, signals the result on
// the channel and then waits to be stopped
func script(n int, done chan error) loaderFunc {
	return func(host mc.Host, _ int) error {
		for range n {
			if err := host.Halt(); err != nil {
				done <- err
				return err
			}
		}
		done <- nil
		return waitForStop(host)
	}
}
