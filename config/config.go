// Package config loads the solver's run configuration: a flat
// key-value text file decoded by spf13/viper into a Config struct via
// mapstructure, plus an optional sibling YAML file holding the per-tag
// boundary tables, mirroring InputParameters.InputParameters2D's
// map[string]map[int]map[string]float64 shape and its
// ghodss/yaml-based Parse method.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/mattetrop/fluidhcen/simerrors"
)

// Config holds every recognized run-configuration key.
type Config struct {
	Nu      float64 `mapstructure:"nu"`
	Dt      float64 `mapstructure:"dt"`
	Tau     float64 `mapstructure:"tau"`
	TEnd    float64 `mapstructure:"t_end"`
	IMax    int     `mapstructure:"imax"`
	JMax    int     `mapstructure:"jmax"`
	XLength float64 `mapstructure:"x_length"`
	YLength float64 `mapstructure:"y_length"`

	UI float64 `mapstructure:"u_i"`
	VI float64 `mapstructure:"v_i"`
	PI float64 `mapstructure:"p_i"`
	TI float64 `mapstructure:"t_i"`
	KI float64 `mapstructure:"k_i"`
	EI float64 `mapstructure:"e_i"`

	Alpha float64 `mapstructure:"alpha"`
	Beta  float64 `mapstructure:"beta"`
	Gx    float64 `mapstructure:"gx"`
	Gy    float64 `mapstructure:"gy"`

	Omega   float64 `mapstructure:"omega"`
	EpsTol  float64 `mapstructure:"eps_tol"`
	IterMax int     `mapstructure:"itermax"`
	Gamma   float64 `mapstructure:"gamma"` // donor-cell upwind blend weight, required by every convection term
	Solver  string  `mapstructure:"pressure_solver"` // "sor" (default) or "jacobi"

	GeometryFile string `mapstructure:"geometry_file"`

	EnergyEq        bool   `mapstructure:"energy_eq"`
	Turbulence      bool   `mapstructure:"turbulence"`
	TurbulenceModel string `mapstructure:"turbulence_model"` // "standard" (default) or "low-reynolds"

	OutputPath  string `mapstructure:"output_path"`
	OutputEvery int    `mapstructure:"output_every"`

	IProc int `mapstructure:"i_proc"`
	JProc int `mapstructure:"j_proc"`

	// BC loaded from the sibling <name>.bc.yaml file, if present.
	BC BoundaryTables
}

// BoundaryTables collects the integer-tag-keyed lookups boundary.Params
// needs: wall velocity/temperature, and inflow U/V/temperature, every
// one optional and defaulting to empty.
type BoundaryTables struct {
	WallVelocity map[int]float64            `yaml:"WallVelocity"`
	WallTemp     map[int]float64             `yaml:"WallTemp"`
	Inflow       map[int]map[string]float64 `yaml:"Inflow"` // tag -> {u, v, t}
}

// Load reads path as a flat key-value config via viper's properties
// backend, decodes it into Config, expands path and GeometryFile
// through '~' (OutputPath is used as written), and loads <path-without-ext>.bc.yaml if it exists.
func Load(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, &simerrors.ConfigurationError{Reason: fmt.Sprintf("expanding config path: %v", err)}
	}

	v := viper.New()
	v.SetConfigFile(expanded)
	v.SetConfigType("properties")
	v.SetDefault("tau", 0.0)
	v.SetDefault("omega", 1.7)
	v.SetDefault("eps_tol", 1e-3)
	v.SetDefault("itermax", 100)
	v.SetDefault("gamma", 0.9)
	v.SetDefault("pressure_solver", "sor")
	v.SetDefault("turbulence_model", "standard")
	v.SetDefault("output_every", 10)
	v.SetDefault("i_proc", 1)
	v.SetDefault("j_proc", 1)

	if err := v.ReadInConfig(); err != nil {
		return nil, &simerrors.ConfigurationError{Reason: fmt.Sprintf("reading config file %s: %v", expanded, err)}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &simerrors.ConfigurationError{Reason: fmt.Sprintf("decoding config file %s: %v", expanded, err)}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.GeometryFile != "" {
		gf, err := homedir.Expand(cfg.GeometryFile)
		if err != nil {
			return nil, &simerrors.ConfigurationError{Reason: fmt.Sprintf("expanding geometry_file: %v", err)}
		}
		cfg.GeometryFile = gf
	}

	bcPath := strings.TrimSuffix(expanded, filepath.Ext(expanded)) + ".bc.yaml"
	bc, err := loadBoundaryTables(bcPath)
	if err != nil {
		return nil, err
	}
	cfg.BC = bc

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.IMax <= 0 || c.JMax <= 0 {
		return &simerrors.ConfigurationError{Reason: "imax and jmax must be positive"}
	}
	if c.XLength <= 0 || c.YLength <= 0 {
		return &simerrors.ConfigurationError{Reason: "x_length and y_length must be positive"}
	}
	if c.Nu <= 0 {
		return &simerrors.ConfigurationError{Reason: "nu must be positive"}
	}
	if c.TEnd <= 0 {
		return &simerrors.ConfigurationError{Reason: "t_end must be positive"}
	}
	switch c.Solver {
	case "sor", "jacobi":
	default:
		return &simerrors.ConfigurationError{Reason: fmt.Sprintf("unknown pressure_solver %q", c.Solver)}
	}
	switch c.TurbulenceModel {
	case "standard", "low-reynolds":
	default:
		return &simerrors.ConfigurationError{Reason: fmt.Sprintf("unknown turbulence_model %q", c.TurbulenceModel)}
	}
	return nil
}

func loadBoundaryTables(path string) (BoundaryTables, error) {
	data, err := readFileIfExists(path)
	if err != nil {
		return BoundaryTables{}, &simerrors.ConfigurationError{Reason: fmt.Sprintf("reading boundary table file %s: %v", path, err)}
	}
	if data == nil {
		return BoundaryTables{}, nil
	}
	var bc BoundaryTables
	if err := yaml.Unmarshal(data, &bc); err != nil {
		return BoundaryTables{}, &simerrors.ConfigurationError{Reason: fmt.Sprintf("parsing boundary table file %s: %v", path, err)}
	}
	return bc, nil
}
