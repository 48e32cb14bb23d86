package main

import (
	"os"
	"strconv"
)

// config is the environment-sourced configuration surface of spec.md §6:
// three scalars, none of which justify pulling in an external config
// library over the standard library's os.Getenv.
type config struct {
	ramSize int
	hwDir   string
	ramFile string // empty when GLOBAL_RAM_FILE is unset: no default dump
}

const (
	defaultRAMSize = 4096
	defaultHWDir   = "."
)

func loadConfig() config {
	cfg := config{
		ramSize: defaultRAMSize,
		hwDir:   defaultHWDir,
	}

	if v := os.Getenv("GLOBAL_RAM_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ramSize = n
		}
	}
	if v := os.Getenv("SYSTEM_HW_DIR"); v != "" {
		cfg.hwDir = v
	}
	if v := os.Getenv("GLOBAL_RAM_FILE"); v != "" {
		cfg.ramFile = v
	}

	return cfg
}
