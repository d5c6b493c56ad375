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

package luavm

import (
	"fmt"

	"github.com/glocklueng/thundercracker/curated"
	"github.com/glocklueng/thundercracker/environment"
	"github.com/glocklueng/thundercracker/hardware/audio"
	"github.com/glocklueng/thundercracker/hardware/flash"
	"github.com/glocklueng/thundercracker/hardware/mc"
	"github.com/glocklueng/thundercracker/hardware/radio"
	"github.com/glocklueng/thundercracker/logger"
	lua "github.com/yuin/gopher-lua"
)

// Sentinal errors.
const (
	NoFirmware    = "luavm: no firmware in flash"
	FirmwareError = "luavm: %v"
)

// Checker is implemented by hosts that can check the consistency of a
// slot's video memory.
type Checker interface {
	CheckQuiescentVRAM(slot mc.Slot) error
}

// Runtime implements the mc.Loader, mc.RadioManager and mc.Tasks interfaces.
type Runtime struct {
	env   *environment.Environment
	cache *flash.BlockCache
	audio *audio.OutDevice

	slots []*Slot

	// the next slot to be given a packet by Produce()
	next     int
	inflight inflight

	// the host and lua state of the most recent call to Run()
	host mc.Host
	L    *lua.LState

	// the error returned by Halt() that caused the firmware to end
	haltErr error

	// a panic raised by the host while the firmware was running. lua turns
	// panics into lua errors but a panic from the host must not be
	// recoverable by the firmware
	fatal any

	tracing         bool
	stackMonitoring bool
	maxDepth        int
}

// NewRuntime is the preferred method of initialisation for the Runtime type.
// Each slot is given the default radio address for its index.
func NewRuntime(env *environment.Environment, cache *flash.BlockCache, out *audio.OutDevice, numSlots int) (*Runtime, error) {
	if numSlots < 1 {
		return nil, curated.Errorf("luavm: at least one cube slot is required")
	}

	rt := &Runtime{
		env:   env,
		cache: cache,
		audio: out,
	}

	for i := range numSlots {
		rt.slots = append(rt.slots, &Slot{
			id:   i,
			addr: radio.DefaultAddress(i),
		})
	}

	return rt, nil
}

// Slots returns the firmware's cube slots.
func (rt *Runtime) Slots() []*Slot {
	return rt.slots
}

// EnableTracing implements the mc.Tracer interface. Every API call made by
// the firmware is logged.
func (rt *Runtime) EnableTracing() {
	rt.tracing = true
}

// EnableStackMonitoring implements the mc.StackMonitor interface. The
// deepest call stack seen when the firmware makes an API call is logged.
func (rt *Runtime) EnableStackMonitoring() {
	rt.stackMonitoring = true
}

// Close releases the lua state.
func (rt *Runtime) Close() {
	if rt.L != nil {
		rt.L.Close()
		rt.L = nil
	}
}

// readFirmware returns the firmware source. The source ends at the first
// erased byte in flash
func (rt *Runtime) readFirmware() (string, error) {
	var src []uint8
	blk := make([]uint8, flash.BlockSize)

	for addr := 0; addr < rt.cache.Size(); addr += flash.BlockSize {
		b := blk[:min(flash.BlockSize, rt.cache.Size()-addr)]
		if err := rt.cache.Read(uint32(addr), b); err != nil {
			return "", err
		}
		for i, v := range b {
			if v == 0xff {
				src = append(src, b[:i]...)
				return string(src), nil
			}
		}
		src = append(src, b...)
	}

	return string(src), nil
}

// Run implements the mc.Loader interface. The lua state is kept after Run()
// returns so that task() can still be called.
func (rt *Runtime) Run(host mc.Host, param int) error {
	rt.host = host
	rt.haltErr = nil
	rt.fatal = nil

	// a transmission interrupted by a stop never had an outcome
	rt.requeue()

	src, err := rt.readFirmware()
	if err != nil {
		return curated.Errorf(FirmwareError, err)
	}
	if src == "" {
		return curated.Errorf(NoFirmware)
	}

	rt.Close()
	rt.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	if err := rt.openLibs(); err != nil {
		return curated.Errorf(FirmwareError, err)
	}
	rt.L.SetGlobal("ENTRY", lua.LNumber(param))
	rt.register()

	logger.Logf(rt.env, "luavm", "running firmware (%d bytes)", len(src))

	err = rt.L.DoString(src)
	rt.cache.LogStats()

	if rt.fatal != nil {
		panic(rt.fatal)
	}
	if rt.haltErr != nil {
		return rt.haltErr
	}
	if err != nil {
		return curated.Errorf(FirmwareError, err)
	}

	return nil
}

// the subset of the lua standard library available to the firmware
func (rt *Runtime) openLibs() error {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		err := rt.L.CallByParam(lua.P{
			Fn:      rt.L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			return err
		}
	}
	return nil
}

// Work implements the mc.Tasks interface.
func (rt *Runtime) Work() {
	if rt.host != nil {
		if err := rt.audio.Update(rt.host.Ticks()); err != nil {
			logger.Log(rt.env, "luavm", err)
		}
	}

	if rt.L == nil {
		return
	}

	fn, ok := rt.L.GetGlobal("task").(*lua.LFunction)
	if !ok {
		return
	}

	err := rt.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	})
	if rt.fatal != nil {
		panic(rt.fatal)
	}
	if err != nil && rt.haltErr == nil {
		logger.Logf(rt.env, "luavm", "task: %v", err)
	}
}

// halt performs a radio transaction for the firmware
func (rt *Runtime) halt() error {
	if err := rt.audio.Update(rt.host.Ticks()); err != nil {
		logger.Log(rt.env, "luavm", err)
	}
	err := rt.host.Halt()
	if curated.Is(err, mc.StopRequested) {
		rt.haltErr = err
	}
	return err
}

// guard calls f and turns any error or panic into a lua error. panics are
// remembered and raised again once the firmware has ended
func (rt *Runtime) guard(L *lua.LState, f func() error) {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				rt.fatal = r
				err = fmt.Errorf("%v", r)
			}
		}()
		err = f()
	}()
	if err != nil {
		L.RaiseError("%v", err)
	}
}
