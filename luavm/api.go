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
	"strings"

	"github.com/glocklueng/thundercracker/hardware/vram"
	"github.com/glocklueng/thundercracker/logger"
	lua "github.com/yuin/gopher-lua"
)

func (rt *Runtime) register() {
	api := map[string]lua.LGFunction{
		"cubes":  rt.cubes,
		"attach": rt.attach,
		"poke":   rt.poke,
		"fill":   rt.fill,
		"peek":   rt.peek,
		"yield":  rt.yield,
		"finish": rt.finish,
		"ticks":  rt.ticks,
		"log":    rt.log,
		"tone":   rt.tone,
	}
	for name, fn := range api {
		rt.L.SetGlobal(name, rt.L.NewFunction(rt.monitor(name, fn)))
	}
}

// monitor wraps an API function with tracing and stack monitoring
func (rt *Runtime) monitor(name string, fn lua.LGFunction) lua.LGFunction {
	return func(L *lua.LState) int {
		if rt.tracing {
			args := make([]string, 0, L.GetTop())
			for i := 1; i <= L.GetTop(); i++ {
				args = append(args, L.Get(i).String())
			}
			logger.Logf(rt.env, "svm", "%s(%s)", name, strings.Join(args, ", "))
		}

		if rt.stackMonitoring {
			var depth int
			for {
				if _, ok := L.GetStack(depth); !ok {
					break
				}
				depth++
			}
			if depth > rt.maxDepth {
				rt.maxDepth = depth
				logger.Logf(rt.env, "svm", "stack depth %d in %s()", depth, name)
			}
		}

		return fn(L)
	}
}

// slot returns the slot at the argument position. raises a lua error if the
// argument is not a valid slot index
func (rt *Runtime) slot(L *lua.LState, n int) *Slot {
	i := L.CheckInt(n)
	if i < 0 || i >= len(rt.slots) {
		L.ArgError(n, fmt.Sprintf("no cube slot %d", i))
	}
	return rt.slots[i]
}

// buffer returns the video buffer of the slot at the argument position.
// raises a lua error if the slot has not been attached
func (rt *Runtime) buffer(L *lua.LState, n int) *vram.Buffer {
	s := rt.slot(L, n)
	if s.buf == nil {
		L.ArgError(n, fmt.Sprintf("cube slot %d is not attached", s.id))
	}
	return s.buf
}

func (rt *Runtime) cubes(L *lua.LState) int {
	L.Push(lua.LNumber(len(rt.slots)))
	return 1
}

func (rt *Runtime) attach(L *lua.LState) int {
	s := rt.slot(L, 1)
	if s.buf == nil {
		s.buf = &vram.Buffer{}
	}
	return 0
}

func (rt *Runtime) poke(L *lua.LState) int {
	buf := rt.buffer(L, 1)
	buf.Poke(L.CheckInt(2), uint16(L.CheckInt(3)))
	return 0
}

func (rt *Runtime) fill(L *lua.LState) int {
	buf := rt.buffer(L, 1)
	buf.Fill(uint16(L.CheckInt(2)))
	return 0
}

func (rt *Runtime) peek(L *lua.LState) int {
	buf := rt.buffer(L, 1)
	L.Push(lua.LNumber(buf.Peek(L.CheckInt(2))))
	return 1
}

func (rt *Runtime) yield(L *lua.LState) int {
	rt.guard(L, rt.halt)
	return 0
}

func (rt *Runtime) finish(L *lua.LState) int {
	s := rt.slot(L, 1)
	rt.guard(L, func() error {
		for s.buf != nil && s.buf.Pending() {
			if err := rt.halt(); err != nil {
				return err
			}
		}
		if c, ok := rt.host.(Checker); ok {
			return c.CheckQuiescentVRAM(s)
		}
		return nil
	})
	return 0
}

func (rt *Runtime) ticks(L *lua.LState) int {
	L.Push(lua.LNumber(rt.host.Ticks()))
	return 1
}

func (rt *Runtime) log(L *lua.LState) int {
	logger.Log(rt.env, "firmware", L.CheckString(1))
	return 0
}

func (rt *Runtime) tone(L *lua.LState) int {
	rt.audio.Mixer().SetTone(L.CheckInt(1))
	return 0
}
