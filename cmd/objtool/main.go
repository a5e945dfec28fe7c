// objtool is a CLI utility for recentering, rotating and splitting OBJ meshes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/objkit/internal/batch"
	"github.com/Faultbox/objkit/internal/config"
	"github.com/Faultbox/objkit/internal/logger"
	"github.com/Faultbox/objkit/pkg/obj"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := initLogging(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	var code int
	switch command {
	case "center":
		code = cmdCenter(cfg, args)
	case "rotate":
		code = cmdRotate(cfg, args)
	case "split-group", "split-object", "split-connected":
		code = cmdSplit(cfg, obj.Mode(command[len("split-"):]), args)
	case "info":
		code = cmdInfo(args)
	case "config":
		code = cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		code = 1
	}

	logger.Sync()
	os.Exit(code)
}

func initLogging(lc config.LoggingConfig) error {
	fileCfg := logger.FileConfig{}
	if lc.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(lc.LogFile)
		if lc.MaxSizeMB > 0 {
			fileCfg.MaxSizeMB = lc.MaxSizeMB
		}
		if lc.MaxBackups > 0 {
			fileCfg.MaxBackups = lc.MaxBackups
		}
		fileCfg.JSON = lc.JSON
	}
	return logger.InitWithFileConfig(lc.Level, fileCfg, true)
}

func printUsage() {
	fmt.Println(`objtool - OBJ mesh utility

Usage:
  objtool [global options] <command> [options] <file.obj>...

Commands:
  center [-o dir] <files>                 Center meshes on their bounding box
  rotate [-x deg] [-y deg] [-z deg] [-o dir] <files>
                                          Rotate about X, then Y, then Z
  split-group [-o dir] <files>            Write one file per group (g)
  split-object [-o dir] <files>           Write one file per object (o)
  split-connected [-o dir] <files>        Write one file per connected component
  info <files>                            Show vertex/face/group counts and bounds
  config [-user] [path]                   Print or save the effective configuration

Global options:
  -config path   Config file (default ./objtool.yaml or user config dir)
  -out dir       Output directory for split commands
  -workers n     Files processed in parallel
  -precision n   Fractional digits for center/rotate (-1 = shortest)
  -log file      Also write logs to a rotating file
  -fail-fast     Stop at the first failing file
  -debug         Enable debug logging

Examples:
  objtool center model.obj > centered.obj
  objtool rotate -x 90 -o rotated/ *.obj
  objtool -out parts split-connected scan.obj
  objtool split-object parts/house_001.obj`)
}

// transformConfig writes to stdout unless an output directory is given.
func transformConfig(cfg *config.Config, p batch.Processor, outDir string) batch.Config {
	bc := batch.Config{
		Processor: p,
		OutputDir: outDir,
		Workers:   cfg.Batch.Workers,
		FailFast:  cfg.Batch.FailFast,
	}
	if outDir == "" {
		bc.Stdout = os.Stdout
	}
	return bc
}

func cmdCenter(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("center", flag.ExitOnError)
	out := fs.String("o", "", "Output directory (default: stdout)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool center [-o dir] <file.obj>...")
		return 1
	}

	p := batch.Center{Precision: cfg.Transform.CenterPrecision}
	return run(transformConfig(cfg, p, *out), fs.Args())
}

func cmdRotate(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("rotate", flag.ExitOnError)
	x := fs.Float64("x", 0, "Rotation about X in degrees")
	y := fs.Float64("y", 0, "Rotation about Y in degrees")
	z := fs.Float64("z", 0, "Rotation about Z in degrees")
	out := fs.String("o", "", "Output directory (default: stdout)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool rotate [-x deg] [-y deg] [-z deg] [-o dir] <file.obj>...")
		return 1
	}

	p := batch.Rotate{X: *x, Y: *y, Z: *z, Precision: cfg.Transform.RotatePrecision}
	return run(transformConfig(cfg, p, *out), fs.Args())
}

func cmdSplit(cfg *config.Config, mode obj.Mode, args []string) int {
	fs := flag.NewFlagSet("split-"+string(mode), flag.ExitOnError)
	out := fs.String("o", cfg.Split.OutputDir, "Output directory")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: objtool split-%s [-o dir] <file.obj>...\n", mode)
		return 1
	}

	bc := batch.Config{
		Processor:   batch.Split{Mode: mode},
		OutputDir:   *out,
		NamePattern: cfg.Split.NamePattern,
		Workers:     cfg.Batch.Workers,
		FailFast:    cfg.Batch.FailFast,
	}
	return run(bc, fs.Args())
}

func run(bc batch.Config, inputs []string) int {
	results, err := batch.Run(context.Background(), bc, inputs)

	written := 0
	for _, r := range results {
		written += len(r.Outputs)
		for _, p := range r.Outputs {
			logger.Debug("wrote", zap.String("path", p))
		}
	}
	if bc.Stdout == nil {
		fmt.Fprintf(os.Stderr, "%d files processed, %d written\n", len(results), written)
	}
	logger.Info("batch finished",
		zap.String("op", bc.Processor.Name()),
		zap.Int("files", len(results)),
		zap.Int("written", written))

	if err != nil {
		logger.Error("batch failed", zap.Error(err))
		return 1
	}
	return 0
}

func cmdInfo(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool info <file.obj>...")
		return 1
	}

	code := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("cannot read file", zap.String("file", path), zap.Error(err))
			code = 1
			continue
		}
		st, err := obj.Inspect(string(data))
		if err != nil {
			logger.Warn("cannot inspect file", zap.String("file", path), zap.Error(err))
			code = 1
			continue
		}

		fmt.Printf("File:       %s\n", path)
		fmt.Printf("Vertices:   %d\n", st.Vertices)
		fmt.Printf("Faces:      %d\n", st.Faces)
		fmt.Printf("Groups:     %d\n", st.Groups)
		fmt.Printf("Objects:    %d\n", st.Objects)
		fmt.Printf("Components: %d\n", st.Components)
		if !st.Bounds.IsEmpty() {
			c, s := st.Bounds.Center(), st.Bounds.Size()
			fmt.Printf("Center:     %.6g %.6g %.6g\n", c.X, c.Y, c.Z)
			fmt.Printf("Size:       %.6g %.6g %.6g\n", s.X, s.Y, s.Z)
		}
		fmt.Println()
	}
	return code
}

func cmdConfig(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	user := fs.Bool("user", false, "Save to the user config directory")
	fs.Parse(args)

	if *user {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "Saved: %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
		return 0
	}
	if fs.NArg() > 0 {
		path := fs.Arg(0)
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "Saved: %s\n", path)
		return 0
	}

	data, err := cfg.Marshal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	os.Stdout.Write(data)
	return 0
}
