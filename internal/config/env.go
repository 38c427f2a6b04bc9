package config

// Environment overrides sit between DefaultConfig and ParseFlags, so a flag
// always wins over the environment. A .env file in the working directory is
// honored when present (godotenv never overrides variables already set in
// the process environment).

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Recognized environment variables.
const (
	EnvTargetMB = "HEIC2JPG_TARGET_MB"
	EnvMaxSide  = "HEIC2JPG_MAX_SIDE"
	EnvWorkers  = "HEIC2JPG_WORKERS"
	EnvKeepEXIF = "HEIC2JPG_KEEP_EXIF"
)

// ApplyEnv loads an optional .env file and overlays recognized HEIC2JPG_*
// variables onto cfg. Unset variables leave cfg untouched; malformed values
// return an error naming the variable.
func ApplyEnv(cfg *Config) error {
	// A missing .env file is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv(EnvTargetMB); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%s must be a positive number (got %q)", EnvTargetMB, v)
		}
		cfg.TargetMB = f
	}
	if v := os.Getenv(EnvMaxSide); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer (got %q)", EnvMaxSide, v)
		}
		cfg.MaxSide = n
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer (got %q)", EnvWorkers, v)
		}
		cfg.Workers = n
	}
	if v := os.Getenv(EnvKeepEXIF); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s must be a boolean (got %q)", EnvKeepEXIF, v)
		}
		cfg.KeepEXIF = b
	}
	return nil
}
