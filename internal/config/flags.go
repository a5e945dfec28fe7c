package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagOut       = flag.String("out", "", "Directory for split output")
	flagWorkers   = flag.Int("workers", 0, "Number of files processed in parallel")
	flagPrecision = flag.Int("precision", -2, "Fractional digits for center and rotate (-1 = shortest)")
	flagLogFile   = flag.String("log", "", "Write logs to this file")
	flagFailFast  = flag.Bool("fail-fast", false, "Stop at the first failing file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments remaining after global flags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOut != "" {
		cfg.Split.OutputDir = *flagOut
	}
	if *flagWorkers > 0 {
		cfg.Batch.Workers = *flagWorkers
	}
	if *flagPrecision >= -1 {
		cfg.Transform.CenterPrecision = *flagPrecision
		cfg.Transform.RotatePrecision = *flagPrecision
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagFailFast {
		cfg.Batch.FailFast = true
	}
}
