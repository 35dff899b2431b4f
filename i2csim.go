// This file is part of i2csim.
//
// i2csim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// i2csim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with i2csim.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/jetsetilly/i2csim/bench"
	"github.com/jetsetilly/i2csim/capture"
	"github.com/jetsetilly/i2csim/environment"
	"github.com/jetsetilly/i2csim/hardware/preferences"
	"github.com/jetsetilly/i2csim/logger"
	"github.com/jetsetilly/i2csim/prefs"
	"github.com/jetsetilly/i2csim/statsview"
)

// Context is passed to the Run() function of every command.
type Context struct {
	env    *environment.Environment
	bench  *bench.Bench
	output io.Writer
}

type cli struct {
	Echo      bool   `optional:"" help:"Echo the central log to stdout."`
	Trace     bool   `optional:"" help:"Add decoder diagnostics to the central log."`
	Prefs     string `optional:"" help:"Preference values for this session (key::value; key::value)."`
	PrefsFile string `optional:"" name:"prefs-file" help:"Use an alternative preferences file."`
	Statsview bool   `optional:"" help:"Launch the runtime statistics server (if available)."`
	Memviz    string `optional:"" help:"Write a graphviz file of the bench structures on exit."`
	Capture   string `optional:"" help:"Record the bus lines to a WAV file."`

	Run     RunCmd     `cmd:"" help:"Run a scenario script."`
	Scan    ScanCmd    `cmd:"" help:"Scan the bus and show discovered devices."`
	Txfr    TxfrCmd    `cmd:"" help:"Perform a single transfer."`
	Replay  ReplayCmd  `cmd:"" help:"Replay a WAV or MP3 logic capture through the bench."`
	Monitor MonitorCmd `cmd:"" help:"Single-step a scenario script in the terminal."`
	EEPROM  EEPROMCmd  `cmd:"" name:"eeprom" help:"Dump the EEPROM image."`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Println(err)
		os.Exit(10)
	}
}

func run(args []string, output io.Writer) (rerr error) {
	var c cli

	k, err := kong.New(&c,
		kong.Name("i2csim"),
		kong.Description("Simulated I2C bus with slave devices."),
		kong.Writers(output, output),
		kong.NamedMapper("int", intMapper{}),
		kong.NamedMapper("hex", intMapper{base: 16}))
	if err != nil {
		return err
	}

	ctx, err := k.Parse(args)
	if err != nil {
		return err
	}

	if c.Echo {
		logger.SetEcho(logger.NewColorizer(output))
		defer logger.SetEcho(nil)
	}

	// values from the --prefs flag are used when the preferences are loaded
	prefs.PushCommandLineStack(c.Prefs)
	p, err := preferences.NewPreferences(c.PrefsFile)
	unused := prefs.PopCommandLineStack()
	if err != nil {
		return err
	}
	if unused != "" {
		logger.Logf(logger.Allow, "i2csim", "unused preferences: %s", unused)
	}

	env, err := environment.NewEnvironment(environment.MainSimulation, p)
	if err != nil {
		return err
	}
	if c.Trace {
		if err := env.Prefs.Trace.Set(true); err != nil {
			return err
		}
	}

	bn, err := bench.NewBench(env)
	if err != nil {
		return err
	}
	defer func() {
		if err := bn.Shutdown(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	if c.Statsview {
		statsview.Launch(output)
	}

	var rec *capture.Recorder
	if c.Capture != "" {
		rec = capture.NewRecorder(env, bn.Bus)
	}

	err = ctx.Run(&Context{
		env:    env,
		bench:  bn,
		output: output,
	})
	if err != nil {
		return err
	}

	if rec != nil {
		if err := rec.Save(c.Capture); err != nil {
			return err
		}
		fmt.Fprintf(output, "capture of %d rounds saved to %s\n", rec.Len(), c.Capture)
	}

	if c.Memviz != "" {
		if err := bn.Memviz(c.Memviz); err != nil {
			return err
		}
	}

	return nil
}
