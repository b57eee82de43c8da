package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chazu/boardsolid/pkg/board"
	"github.com/chazu/boardsolid/pkg/circuit"
	"github.com/spf13/viper"
)

// setDefaults registers every construction option with its default so
// that config files and BOARDSOLID_* variables can override any of them.
func setDefaults(v *viper.Viper) {
	d := board.DefaultOptions()
	v.SetDefault("clip_margin", d.ClipMargin)
	v.SetDefault("clip_z_margin", d.ClipZMargin)
	v.SetDefault("cut_overshoot", d.CutOvershoot)
	v.SetDefault("copper_thickness", d.CopperThickness)
	v.SetDefault("surface_offset", d.SurfaceOffset)
	v.SetDefault("plating_thickness", d.PlatingThickness)
	v.SetDefault("polygon_pad_hole_margin", d.PolygonPadHoleMargin)
	v.SetDefault("outer_segments", d.OuterSegments)
	v.SetDefault("inner_segments", d.InnerSegments)
	v.SetDefault("arc_resolution", d.ArcResolution)
	v.SetDefault("cut_pours_at_holes", d.CutPoursAtHoles)
}

// loadOptions reads construction options. An explicit path must exist;
// otherwise boardsolid.{yaml,toml,json} in the working directory is used
// when present.
func loadOptions(path string) (board.Options, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("boardsolid")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("boardsolid")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return board.Options{}, fmt.Errorf("config: %w", err)
		}
	}

	opts := board.DefaultOptions()
	if err := v.Unmarshal(&opts); err != nil {
		return board.Options{}, fmt.Errorf("config: %w", err)
	}
	return opts, nil
}

// readElements decodes circuit records from a file, or from stdin when
// name is "-".
func readElements(name string) ([]circuit.Element, error) {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return circuit.Decode(r)
}
