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


package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/glocklueng/thundercracker/environment"
	"github.com/glocklueng/thundercracker/hardware/audio"
	"github.com/glocklueng/thundercracker/hardware/cube"
	"github.com/glocklueng/thundercracker/hardware/flash"
	"github.com/glocklueng/thundercracker/hardware/mc"
	"github.com/glocklueng/thundercracker/hardware/preferences"
	"github.com/glocklueng/thundercracker/logger"
	"github.com/glocklueng/thundercracker/luavm"
	"github.com/glocklueng/thundercracker/modalflag"
	"github.com/glocklueng/thundercracker/notifications"
	"github.com/glocklueng/thundercracker/paths"
	"github.com/glocklueng/thundercracker/prefs"
	"github.com/glocklueng/thundercracker/statsview"
	"github.com/glocklueng/thundercracker/version"
	"github.com/glocklueng/thundercracker/wavwriter"
	"golang.org/x/term"
)

const defaultFlashFile = "flash"

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// communication between the main() function and the launch() function.
// interrupt signals are forwarded to the launched mode, which decides how to
// end gracefully.
type mainSync struct {
	state     chan stateRequest
	interrupt chan bool
}

func main() {
	sync := &mainSync{
		state:     make(chan stateRequest),
		interrupt: make(chan bool, 1),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync)

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Print("\r")

			// a second interrupt before the first has been acknowledged ends
			// the program immediately
			select {
			case sync.interrupt <- true:
			default:
				done = true
				exitVal = 1
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}
			}
		}
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "INSTALL", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "INSTALL":
		err = install(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// addPrefFlags adds the flags common to the RUN and INSTALL modes. The
// returned string pointer is the free-form preferences flag.
func addPrefFlags(md *modalflag.Modes) *string {
	md.AddPref("cubes", "mc.numCubes", "number of simulated cubes")
	md.AddPref("retries", "mc.radio.maxRetries", "delivery attempts for each radio packet")
	md.AddPref("radiotrace", "mc.trace.radio", "log every radio packet")
	md.AddPref("svmtrace", "mc.trace.svm", "log every firmware API call")
	md.AddPref("flashstats", "mc.trace.flashStats", "log flash cache statistics")
	md.AddPref("stackmon", "mc.trace.stackMonitor", "log firmware stack usage")
	md.AddPref("assert", "mc.assertions", "consistency errors are fatal")
	return md.AddString("prefs", "", "preferences to apply to this session (key::value; ...)")
}

// newEnvironment creates the main simulation environment. Preferences given
// on the command line override the values on disk.
func newEnvironment(md *modalflag.Modes, extra string) (*environment.Environment, error) {
	cl := []string{}
	if s := md.CommandLinePrefs(); s != "" {
		cl = append(cl, s)
	}
	if extra != "" {
		cl = append(cl, extra)
	}
	prefs.PushCommandLineStack(strings.Join(cl, "; "))
	defer prefs.PopCommandLineStack()

	p, err := preferences.NewPreferences()
	if err != nil {
		return nil, err
	}

	return environment.NewEnvironment(environment.MainSimulation, p)
}

// setLogEcho echoes the log to stdout. The output is colorized if stdout is
// a terminal.
func setLogEcho(echo bool) {
	if !echo {
		logger.SetEcho(nil, false)
		return
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		logger.SetEcho(logger.NewColorizer(os.Stdout), false)
	} else {
		logger.SetEcho(os.Stdout, false)
	}
}

// printer implements the notifications.Notify interface.
type printer struct {
	output io.Writer
}

// Notify implements the notifications.Notify interface.
func (p *printer) Notify(notice notifications.Notice) error {
	switch notice {
	case notifications.NotifyFirmwareExited:
		fmt.Fprintln(p.output, "! firmware has exited")
	case notifications.NotifyImageInstalled:
		fmt.Fprintln(p.output, "! image installed")
	case notifications.NotifyImageFailed:
		fmt.Fprintln(p.output, "! image installation failed")
	case notifications.NotifyStopped:
		fmt.Fprintln(p.output, "! simulation stopped")
	}
	return nil
}

// simulation is the complete set of components making up the simulated
// system.
type simulation struct {
	env    *environment.Environment
	cubes  *cube.System
	dev    *flash.Device
	out    *audio.OutDevice
	rt     *luavm.Runtime
	mc     *mc.MC
	notify *printer
}

func newSimulation(env *environment.Environment, flashPath string, backend audio.Backend) (*simulation, error) {
	numCubes := env.Prefs.NumCubes.Get().(int)

	sim := &simulation{
		env:   env,
		cubes: cube.NewSystem(numCubes),
		dev:   flash.NewDevice(env, flash.DefaultSize, flashPath),
		out:   audio.NewOutDevice(env, backend),
		notify: &printer{output: os.Stdout},
	}

	err := sim.dev.Load()
	if err != nil {
		return nil, err
	}

	cache := flash.NewBlockCache(env, sim.dev)

	sim.rt, err = luavm.NewRuntime(env, cache, sim.out, numCubes)
	if err != nil {
		return nil, err
	}

	peripherals := make([]mc.Peripheral, 0, len(sim.cubes.Cubes))
	for _, c := range sim.cubes.Cubes {
		peripherals = append(peripherals, c)
	}

	sim.mc, err = mc.NewMC(env, mc.Components{
		Radio:  sim.rt,
		Cubes:  peripherals,
		Sync:   sim.cubes.Sync,
		Loader: sim.rt,
		Tasks:  sim.rt,
		Audio:  sim.out,
		Flash:  sim.dev,
		Cache:  cache,
		Notify: sim.notify,
	})
	if err != nil {
		sim.rt.Close()
		return nil, err
	}

	return sim, nil
}

// end the simulation. safe to call whether the simulation has been started
// or not.
func (sim *simulation) end() error {
	sim.mc.Stop()
	sim.cubes.Stop()
	sim.rt.Close()
	err := sim.out.Stop()
	sim.mc.Exit()
	return err
}

// summary of how much time has been simulated
func (sim *simulation) summary() string {
	return fmt.Sprintf("! %d ticks simulated (%dms)", sim.mc.Clock(), sim.mc.Ticks().Milliseconds())
}

func defaultFlashPath() (string, error) {
	return paths.ResourcePath("", defaultFlashFile)
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	defFlash, err := defaultFlashPath()
	if err != nil {
		return err
	}

	extraPrefs := addPrefFlags(md)
	flashFile := md.AddString("flash", defFlash, "file backing the simulated flash memory")
	wav := md.AddString("wav", "", "record audio to wav file")
	duration := md.AddDuration("duration", 0, "run for this length of time (zero runs until interrupted)")
	stats := md.AddBool("statsview", false, "run stats server")
	diagram := md.AddString("memviz", "", "write a diagram of the master controller to file on exit")
	log := md.AddBool("log", false, "echo log to stdout")
	save := md.AddBool("save", false, "save flash contents on exit")

	md.AdditionalHelp("An optional firmware image will be installed before the simulation starts.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setLogEcho(*log)

	if len(md.RemainingArgs()) > 1 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	env, err := newEnvironment(md, *extraPrefs)
	if err != nil {
		return err
	}

	var backend audio.Backend
	if *wav != "" {
		backend, err = wavwriter.New(*wav)
	} else {
		backend, err = newAudioBackend()
	}
	if err != nil {
		return err
	}

	sim, err := newSimulation(env, *flashFile, backend)
	if err != nil {
		return err
	}

	if *stats {
		statsview.Launch(os.Stdout, statsview.DefaultAddress)
	}

	if len(md.RemainingArgs()) == 1 {
		err = sim.mc.InstallImage(md.GetArg(0))
		if err != nil {
			_ = sim.end()
			return err
		}
	}

	sim.cubes.Start()
	err = sim.mc.Start()
	if err != nil {
		_ = sim.end()
		return err
	}

	var timeout <-chan time.Time
	if *duration > 0 {
		timeout = time.After(*duration)
	}

	select {
	case <-sync.interrupt:
	case <-timeout:
	}

	sim.mc.Stop()

	if *diagram != "" {
		f, err := os.Create(*diagram)
		if err != nil {
			_ = sim.end()
			return err
		}
		sim.mc.Diagram(f)
		if err := f.Close(); err != nil {
			_ = sim.end()
			return err
		}
	}

	fmt.Println(sim.summary())

	if *save {
		err = sim.dev.Save()
		if err != nil {
			_ = sim.end()
			return err
		}
	}

	return sim.end()
}

func install(md *modalflag.Modes) error {
	md.NewMode()

	defFlash, err := defaultFlashPath()
	if err != nil {
		return err
	}

	extraPrefs := addPrefFlags(md)
	flashFile := md.AddString("flash", defFlash, "file backing the simulated flash memory")
	log := md.AddBool("log", false, "echo log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setLogEcho(*log)

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("firmware image required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	env, err := newEnvironment(md, *extraPrefs)
	if err != nil {
		return err
	}

	sim, err := newSimulation(env, *flashFile, audio.Headless{})
	if err != nil {
		return err
	}

	err = sim.mc.InstallImage(md.GetArg(0))
	if err == nil {
		err = sim.dev.Save()
	}
	if eerr := sim.end(); err == nil {
		err = eerr
	}

	return err
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information from version control")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Println(version.ApplicationName, ver)
	if *revision {
		fmt.Println(rev)
	}

	return nil
}
