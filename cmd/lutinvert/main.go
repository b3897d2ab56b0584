// Copyright (C) 2026 The lutinvert authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/pbnjay/memory"

	nl "github.com/JunlongH/lutinvert/internal"
	"github.com/JunlongH/lutinvert/internal/invert"
	"github.com/JunlongH/lutinvert/internal/lut"
	"github.com/JunlongH/lutinvert/internal/rest"
)

const version = "0.1.0"

var totalMiBs=memory.TotalMemory()/1024/1024

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")

var logF    = flag.String("log", "", "mirror output to `file`")
var size    = flag.Int("size", 0, "side length of the output LUT, 0=same as input")
var verify  = flag.Bool("verify", false, "sample round-trip accuracy after inverting")
var samples = flag.Int("samples", 100, "number of random sample points for -verify")
var quiet   = flag.Bool("quiet", false, "suppress progress output")
var threads = flag.Int("threads", runtime.GOMAXPROCS(0), "max parallel workers for grid solves")
var title   = flag.String("title", "", "title for the output LUT, default derives from the input title")
var preview = flag.String("preview", "", "write a 16-bit TIFF preview of the result to `file`")

var genType = flag.String("gentype", "gamma", "generator for the gen command: identity, gamma or huerotate")
var genSize = flag.Int("gensize", 33, "side length for generated LUTs")
var gamma   = flag.Float64("gamma", 2.0, "gamma exponent for the gamma generator")
var rotate  = flag.Float64("rotate", 30.0, "hue rotation in degrees for the huerotate generator")

func main() {
	logWriter:=os.Stdout
	start:=time.Now()
	flag.Usage=func(){
		fmt.Fprintf(logWriter, `Lutinvert Copyright (c) 2026 The lutinvert authors
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.

Usage: %s [-flag value] (invert|gen|serve|legal|version) (in.cube out.cube)

Commands:
  invert  Invert a 3D LUT: invert in.cube out.cube
  gen     Generate a synthetic test LUT: gen out.cube
  serve   Offer LUT inversion as a REST API on port 8080
  legal   Show license and attribution information
  version Show version information

Flags:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Initialize logging to file in addition to stdout, if selected
	if *logF!="" {
		err:=nl.LogAlsoToFile(*logF)
		if err!=nil { nl.LogFatalf("Unable to open logfile '%s'\n", *logF) }
	}

	// Enable CPU profiling if flagged
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			nl.LogFatal("Could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			nl.LogFatal("Could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	args:=flag.Args()
	if len(args)<1 {
		flag.Usage()
		return
	}

	var err error
	switch args[0] {
	case "invert":
		err=cmdInvert(args[1:])

	case "gen":
		err=cmdGen(args[1:])

	case "serve":
		rest.Serve()

	case "legal":
		cmdLegal()

	case "version":
		nl.LogPrintf("Version %s\n", version)

	case "help", "?":
		flag.Usage()
		return

	default:
		fmt.Fprintf(logWriter, "Unknown command '%s'\n\n", args[0])
		flag.Usage()
		return
	}

	if !*quiet {
		now:=time.Now()
		elapsed:=now.Sub(start)
		nl.LogPrintf("\nDone after %v\n", elapsed)
	}

	// Store memory profile if flagged
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			nl.LogFatal("Could not create memory profile: ", err)
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.Lookup("allocs").WriteTo(f,0); err != nil {
			nl.LogFatal("Could not write allocation profile: ", err)
		}
	}

	nl.LogSync()
	if err!=nil {
		nl.LogPrintf("Error: %s\n", err.Error())
		os.Exit(-1)
	}
}

// Inverts the LUT in args[0] and writes the result to args[1]
func cmdInvert(args []string) error {
	if len(args)!=2 { return errors.New("invert needs an input and an output file path") }
	inPath, outPath:=args[0], args[1]

	fwd, err:=lut.ReadCubeFile(inPath)
	if err!=nil {
		nl.LogFatalf("Error reading LUT file '%s': %s\n", inPath, err.Error())
	}
	if !*quiet {
		nl.LogPrintf("Read %v from %s\n", fwd, inPath)
	}

	outSize:=*size
	if outSize==0 { outSize=fwd.Size }
	warnIfMemoryTight(fwd.Size, outSize)

	var progress io.Writer=os.Stdout
	if *quiet { progress=io.Discard }

	inv, report, err:=invert.Invert(fwd, outSize, *threads, progress)
	if err!=nil { return err }
	if *title!="" { inv.Title=*title }

	if !*quiet {
		nl.LogPrintf("Solved %d nodes: mean error %.3g, max error %.3g, %d nodes above %g\n",
			report.Nodes, report.MeanError, report.MaxError, report.HighErrorNodes, invert.HighErrorThreshold)
		nl.LogPrintf("Writing %v to %s\n", inv, outPath)
	}
	if err:=inv.WriteCubeFile(outPath); err!=nil { return err }

	if *preview!="" {
		if !*quiet { nl.LogPrintf("Writing preview image to %s\n", *preview) }
		if err:=inv.WriteTIFF16ToFile(*preview); err!=nil { return err }
	}

	if *verify {
		var verifyLog io.Writer=os.Stdout
		if *quiet { verifyLog=io.Discard }
		invert.VerifyRoundTrip(fwd, inv, *samples, verifyLog)
	}
	return nil
}

// Generates a synthetic test LUT and writes it to args[0]
func cmdGen(args []string) error {
	if len(args)!=1 { return errors.New("gen needs an output file path") }

	var l *lut.LUT
	switch *genType {
	case "identity":
		l=lut.MakeIdentity(*genSize)
	case "gamma":
		l=lut.MakeGamma(*genSize, *gamma)
	case "huerotate":
		l=lut.MakeHueRotate(*genSize, *rotate)
	default:
		return fmt.Errorf("unknown generator type %q, expected identity, gamma or huerotate", *genType)
	}
	if *title!="" { l.Title=*title }

	if !*quiet { nl.LogPrintf("Writing %v to %s\n", l, args[0]) }
	return l.WriteCubeFile(args[0])
}

// Prints a non-fatal warning when the job's grids would consume an outsized
// share of physical memory
func warnIfMemoryTight(inSize, outSize int) {
	in, out:=uint64(inSize), uint64(outSize)
	sampleBytes:=uint64(72) // KD-tree sample pair, the dominant per-node cost
	neededMiBs:=(in*in*in*(24+sampleBytes) + out*out*out*24)/1024/1024
	if neededMiBs>totalMiBs/2 {
		nl.LogPrintf("Warning: job needs about %d MiB of %d MiB physical memory\n", neededMiBs, totalMiBs)
	}
}
