// internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"rnannot/core/classify"
)

// Settings is everything a run needs beyond the CLI surface: the
// classification tolerances plus runtime knobs that may also live in the
// config file. Precedence is defaults < config file < environment
// (RNANNOT_*); the CLI applies its own overrides on top.
type Settings struct {
	Classify classify.Config `mapstructure:"classify"`
	Threads  int             `mapstructure:"threads"`
	Output   string          `mapstructure:"output"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Classify: classify.DefaultConfig(),
		Threads:  0,
		Output:   "text",
	}
}

// Load resolves settings from the optional YAML file at path plus the
// environment. An empty path skips the file and still applies env vars.
func Load(path string) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("RNANNOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the resolved settings as a whole.
func (s Settings) Validate() error {
	if err := s.Classify.Validate(); err != nil {
		return err
	}
	if s.Threads < 0 {
		return fmt.Errorf("config: threads must be >= 0, got %d", s.Threads)
	}
	switch s.Output {
	case "text", "json", "jsonl":
	default:
		return fmt.Errorf("config: unknown output format %q", s.Output)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("threads", d.Threads)
	v.SetDefault("output", d.Output)

	c := d.Classify
	v.SetDefault("classify.pair_distance_cutoff", c.PairDistanceCutoff)
	v.SetDefault("classify.stack_distance_cutoff", c.StackDistanceCutoff)
	v.SetDefault("classify.backbone_distance_cutoff", c.BackboneDistanceCutoff)
	v.SetDefault("classify.hbond_distance_tolerance", c.HBondDistanceTolerance)
	v.SetDefault("classify.hbond_angle_tolerance", c.HBondAngleTolerance)
	v.SetDefault("classify.ideal_hbond_length", c.IdealHBondLength)
	v.SetDefault("classify.stack_angle_tolerance", c.StackAngleTolerance)
	v.SetDefault("classify.stack_min_z", c.StackMinZ)
	v.SetDefault("classify.stack_max_z", c.StackMaxZ)
	v.SetDefault("classify.min_ring_overlap", c.MinRingOverlap)
	v.SetDefault("classify.pair_angle_tolerance", c.PairAngleTolerance)
	v.SetDefault("classify.pair_max_z", c.PairMaxZ)
	v.SetDefault("classify.backbone_contact_cutoff", c.BackboneContactCutoff)
	v.SetDefault("classify.frame_residual_tolerance", c.FrameResidualTolerance)
	v.SetDefault("classify.center_slack", c.CenterSlack)
	v.SetDefault("classify.grid_cell_size", c.GridCellSize)
}
