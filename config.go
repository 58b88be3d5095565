package main

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"regcheck/harness"
	"regcheck/log"
)

type Config struct {
	Bus     BusConfig     `toml:"bus"`
	Leds    LedsConfig    `toml:"leds"`
	Tests   TestsConfig   `toml:"tests"`
	General GeneralConfig `toml:"general"`
}

type BusConfig struct {
	Name     string `toml:"name"`      // i2creg bus name, empty picks the first one
	Addr     uint16 `toml:"addr"`      // 7-bit slave address
	ClockKHz int    `toml:"clock_khz"` // nominal bus clock
}

type LedsConfig struct {
	Pins [4]string `toml:"pins"` // panel outputs, bit0 first
}

type TestsConfig struct {
	WriteReadRegs int    `toml:"write_read_regs"`
	WriteReadReg0 int    `toml:"write_read_reg0"`
	Isolation     int    `toml:"isolation"`
	InvalidWrite  int    `toml:"invalid_write"`
	InvalidRead   int    `toml:"invalid_read"`
	Deterministic bool   `toml:"deterministic"`
	Seed          uint64 `toml:"seed"` // 0 seeds from the clock
}

type GeneralConfig struct {
	StrictExit bool `toml:"strict_exit"`
}

var ConfigDir string = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("regcheck")
	if err := configdir.MakePath(dir); err != nil {
		log.ModHarness.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})()

const cfgFilename = "config.toml"

var defaultConfig = Config{
	Bus: BusConfig{
		Addr:     0x3A,
		ClockKHz: 400,
	},
	Leds: LedsConfig{
		Pins: [4]string{"GPIO17", "GPIO27", "GPIO22", "GPIO23"},
	},
	Tests: TestsConfig{
		WriteReadRegs: 100,
		WriteReadReg0: 10,
		Isolation:     500,
		InvalidWrite:  500,
		InvalidRead:   500,
	},
}

// LoadConfigOrDefault loads the configuration from the regcheck config
// directory. On first run the default configuration is written there,
// so the file on disk always spells out the effective settings.
func LoadConfigOrDefault() Config {
	path := filepath.Join(ConfigDir, cfgFilename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveConfig(defaultConfig); err != nil {
			log.ModHarness.Warnf("cannot write default config file: %v", err)
		}
		return defaultConfig
	}
	return loadConfig(path)
}

// loadConfig decodes path over the default configuration, so keys
// absent from the file keep their default values. A partial file must
// never zero the slave address or the iteration counts.
func loadConfig(path string) Config {
	cfg := defaultConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		log.ModHarness.Warnf("cannot read config file %s: %v", path, err)
		return defaultConfig
	}
	return cfg
}

// SaveConfig into the regcheck config directory.
func SaveConfig(cfg Config) error {
	return saveConfig(filepath.Join(ConfigDir, cfgFilename), cfg)
}

func saveConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, buf, 0644)
}

func (tc TestsConfig) params() harness.Params {
	return harness.Params{
		WriteReadRegs: tc.WriteReadRegs,
		WriteReadReg0: tc.WriteReadReg0,
		Isolation:     tc.Isolation,
		InvalidWrite:  tc.InvalidWrite,
		InvalidRead:   tc.InvalidRead,
		Deterministic: tc.Deterministic,
		Seed:          tc.Seed,
	}
}
