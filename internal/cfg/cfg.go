// Package cfg holds the run configuration. Every setting has a hard-coded
// default matching the reference workflow; a YAML file named in CONFIG_FILE
// and individual environment variables can override them.
package cfg

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	bcerrors "bikecast/pkg/errors"
)

// Settings is the resolved run configuration.
type Settings struct {
	DataPath     string
	Delimiter    rune
	HasHeader    bool
	TestFraction float64
	Seed         uint64

	NumIterations int
	LearningRate  float64
	MaxDepth      int
	MinLeafSize   int
	Lambda        float64

	ROCPlotPath   string // empty disables the ROC curve PNG
	ModelSavePath string // empty disables model persistence
	LogLevel      string
}

// ConfigFile mirrors the YAML layout.
type ConfigFile struct {
	Data struct {
		Path      string `yaml:"path"`
		Delimiter string `yaml:"delimiter"`
		HasHeader *bool  `yaml:"hasHeader"`
	} `yaml:"data"`

	Split struct {
		TestFraction float64 `yaml:"testFraction"`
		Seed         *uint64 `yaml:"seed"`
	} `yaml:"split"`

	Trainer struct {
		NumIterations int     `yaml:"numIterations"`
		LearningRate  float64 `yaml:"learningRate"`
		MaxDepth      int     `yaml:"maxDepth"`
		MinLeafSize   int     `yaml:"minLeafSize"`
		Lambda        float64 `yaml:"lambda"`
	} `yaml:"trainer"`

	Output struct {
		ROCPlotPath   string `yaml:"rocPlotPath"`
		ModelSavePath string `yaml:"modelSavePath"`
		LogLevel      string `yaml:"logLevel"`
	} `yaml:"output"`
}

// Defaults reproduces the reference workflow constants: bike_sharing.csv,
// comma delimiter with a header row, 10% test split under seed 0.
func Defaults() Settings {
	return Settings{
		DataPath:      "bike_sharing.csv",
		Delimiter:     ',',
		HasHeader:     true,
		TestFraction:  0.1,
		Seed:          0,
		NumIterations: 100,
		LearningRate:  0.1,
		MaxDepth:      6,
		MinLeafSize:   20,
		Lambda:        1.0,
		LogLevel:      "info",
	}
}

// Load resolves settings from defaults, then the YAML file named in
// CONFIG_FILE, then environment variables.
func Load() (Settings, error) {
	s := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyYAML(&s, path); err != nil {
			return Settings{}, err
		}
	}
	if err := applyEnv(&s); err != nil {
		return Settings{}, err
	}

	if s.TestFraction <= 0 || s.TestFraction >= 1 {
		return Settings{}, bcerrors.NewValueError("cfg.Load", "testFraction must be in (0, 1)")
	}
	if s.NumIterations <= 0 {
		return Settings{}, bcerrors.NewValueError("cfg.Load", "numIterations must be positive")
	}
	return s, nil
}

func applyYAML(s *Settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return bcerrors.Wrapf(err, "failed to read config file %s", path)
	}

	var f ConfigFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return bcerrors.Wrap(err, "failed to parse config file")
	}

	if f.Data.Path != "" {
		s.DataPath = f.Data.Path
	}
	if f.Data.Delimiter != "" {
		s.Delimiter = []rune(f.Data.Delimiter)[0]
	}
	if f.Data.HasHeader != nil {
		s.HasHeader = *f.Data.HasHeader
	}
	if f.Split.TestFraction != 0 {
		s.TestFraction = f.Split.TestFraction
	}
	if f.Split.Seed != nil {
		s.Seed = *f.Split.Seed
	}
	if f.Trainer.NumIterations != 0 {
		s.NumIterations = f.Trainer.NumIterations
	}
	if f.Trainer.LearningRate != 0 {
		s.LearningRate = f.Trainer.LearningRate
	}
	if f.Trainer.MaxDepth != 0 {
		s.MaxDepth = f.Trainer.MaxDepth
	}
	if f.Trainer.MinLeafSize != 0 {
		s.MinLeafSize = f.Trainer.MinLeafSize
	}
	if f.Trainer.Lambda != 0 {
		s.Lambda = f.Trainer.Lambda
	}
	if f.Output.ROCPlotPath != "" {
		s.ROCPlotPath = f.Output.ROCPlotPath
	}
	if f.Output.ModelSavePath != "" {
		s.ModelSavePath = f.Output.ModelSavePath
	}
	if f.Output.LogLevel != "" {
		s.LogLevel = f.Output.LogLevel
	}
	return nil
}

func applyEnv(s *Settings) error {
	if v := os.Getenv("BIKECAST_DATA_PATH"); v != "" {
		s.DataPath = v
	}
	if v := os.Getenv("BIKECAST_TEST_FRACTION"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return bcerrors.Wrap(err, "invalid BIKECAST_TEST_FRACTION")
		}
		s.TestFraction = f
	}
	if v := os.Getenv("BIKECAST_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return bcerrors.Wrap(err, "invalid BIKECAST_SEED")
		}
		s.Seed = seed
	}
	if v := os.Getenv("BIKECAST_ROC_PLOT"); v != "" {
		s.ROCPlotPath = v
	}
	if v := os.Getenv("BIKECAST_MODEL_PATH"); v != "" {
		s.ModelSavePath = v
	}
	if v := os.Getenv("BIKECAST_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	return nil
}
