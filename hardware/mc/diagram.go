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
	"fmt"
	"io"

	"github.com/bradleyjkemp/memviz"
)

type cubeDiagram struct {
	ID     int
	RXAddr string
}

type mcDiagram struct {
	Running bool
	Ticks   uint64
	Time    string
	Cubes   []*cubeDiagram
}

// Diagram writes a graphviz representation of the state of the simulation
// to w.
func (mc *MC) Diagram(w io.Writer) {
	d := &mcDiagram{
		Running: mc.IsRunning(),
		Ticks:   mc.Clock(),
		Time:    fmt.Sprintf("%dms", mc.Ticks().Milliseconds()),
	}

	n := min(len(mc.cubes), mc.env.Prefs.NumCubes.Get().(int))
	for _, c := range mc.cubes[:n] {
		d.Cubes = append(d.Cubes, &cubeDiagram{
			ID:     c.ID(),
			RXAddr: fmt.Sprintf("%#016x", c.PackedRXAddr()),
		})
	}

	memviz.Map(w, d)
}
