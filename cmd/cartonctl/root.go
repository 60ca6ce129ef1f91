package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artienterprises/cartonview/pkg/config"
	"github.com/artienterprises/cartonview/pkg/viewer"
)

// boxFlags are the configuration flags shared by scene, strength and export.
type boxFlags struct {
	length, width, height float64
	ply                   string
	unit                  string
	exploded              bool
}

func (f *boxFlags) register(cmd *cobra.Command) {
	d := config.Default()
	cmd.Flags().Float64VarP(&f.length, "length", "l", d.Length, "Length in mm")
	cmd.Flags().Float64VarP(&f.width, "width", "w", d.Width, "Width in mm")
	cmd.Flags().Float64Var(&f.height, "height", d.Height, "Height in mm")
	cmd.Flags().StringVarP(&f.ply, "ply", "p", d.Ply.String(), "Wall construction (3, 5 or 7)")
	cmd.Flags().StringVarP(&f.unit, "unit", "u", string(d.Unit), "Display unit (mm or in)")
	cmd.Flags().BoolVarP(&f.exploded, "exploded", "x", false, "Show the layer stack")
}

// configuration runs the flag values through the validated setters.
func (f *boxFlags) configuration(s config.Settings) (config.Configuration, error) {
	c := config.Default()
	for _, set := range []func() error{
		func() error { return c.SetLength(f.length, s.Limits) },
		func() error { return c.SetWidth(f.width, s.Limits) },
		func() error { return c.SetHeight(f.height, s.Limits) },
		func() error { return c.SetPlyString(f.ply) },
		func() error { return c.SetUnitString(f.unit) },
	} {
		if err := set(); err != nil {
			return c, err
		}
	}
	c.SetExploded(f.exploded)
	return c, nil
}

// settingsPath is the --settings persistent flag.
var settingsPath string

func loadSettings() (config.Settings, error) {
	if settingsPath == "" {
		return config.DefaultSettings(), nil
	}
	return config.Load(settingsPath)
}

// newViewer builds a viewer from flags and the settings file.
func (f *boxFlags) newViewer() (*viewer.Viewer, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	c, err := f.configuration(s)
	if err != nil {
		return nil, err
	}
	v, err := viewer.New(s, viewer.WithConfiguration(c))
	if err != nil {
		return nil, fmt.Errorf("cartonctl: %w", err)
	}
	return v, nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cartonctl",
		Short: "Corrugated carton preview tools",
		Long: `cartonctl - corrugated carton preview tools

Build the same scene the desktop preview draws, score it, suggest a
wall construction for a product, evaluate configuration scripts and
export STL.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "YAML settings file")

	cmd.AddCommand(
		newSceneCmd(),
		newStrengthCmd(),
		newSuggestCmd(),
		newExportCmd(),
		newEvalCmd(),
	)
	return cmd
}
