package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/artienterprises/cartonview/pkg/engine"
	"github.com/artienterprises/cartonview/pkg/kernel"
	"github.com/artienterprises/cartonview/pkg/kernel/sdfx"
	"github.com/artienterprises/cartonview/pkg/ply"
	"github.com/artienterprises/cartonview/pkg/strength"
	"github.com/artienterprises/cartonview/pkg/viewer"
)

// ---------------------------------------------------------------------------
// scene
// ---------------------------------------------------------------------------

func newSceneCmd() *cobra.Command {
	var f boxFlags
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Print the descriptors, labels and read-outs of a carton",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := f.newViewer()
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(v.Scene())
			}
			printScene(cmd.OutOrStdout(), v)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the scene as JSON")
	return cmd
}

func printScene(w io.Writer, v *viewer.Viewer) {
	sc := v.Scene()
	sp := v.Specs()
	fmt.Fprintf(w, "%s  %s\n", sp.Label, sc.Config)
	fmt.Fprintf(w, "thickness %s, capacity %s\n", sp.Thickness, sp.Capacity)
	fmt.Fprintf(w, "strength  %s\n", sc.Strength)
	fmt.Fprintln(w)
	for _, d := range sc.Descriptors {
		p := d.Transform.Position
		fmt.Fprintf(w, "%-14s %-4s at (%.3f, %.3f, %.3f)  %s\n",
			d.Name, d.Kind, p[0], p[1], p[2], describeExtent(d))
	}
	labels := append(lo.Map(sc.Annotations.Labels, func(l kernel.LabelAnchor, _ int) string {
		return l.Text
	}), lo.Map(sc.Labels, func(l kernel.LabelAnchor, _ int) string {
		return l.Text
	})...)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "labels: %s\n", strings.Join(labels, ", "))
}

func describeExtent(d kernel.Descriptor) string {
	if d.Kind == kernel.GeometryMesh && d.Mesh != nil {
		return fmt.Sprintf("%d vertices", d.Mesh.VertexCount())
	}
	return fmt.Sprintf("%.3f x %.3f x %.3f", d.Extent[0], d.Extent[1], d.Extent[2])
}

// ---------------------------------------------------------------------------
// strength
// ---------------------------------------------------------------------------

func newStrengthCmd() *cobra.Command {
	var f boxFlags
	var all bool
	cmd := &cobra.Command{
		Use:   "strength",
		Short: "Score a carton, or every ply with --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			c, err := f.configuration(s)
			if err != nil {
				return err
			}
			plies := []ply.Ply{c.Ply}
			if all {
				plies = ply.All()
			}
			for _, p := range plies {
				r := strength.ComputeFor(p, c.Length, c.Width, c.Height, s.Limits.MaxVolume())
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", p, r)
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "Score every ply at these dimensions")
	return cmd
}

// ---------------------------------------------------------------------------
// suggest
// ---------------------------------------------------------------------------

func newSuggestCmd() *cobra.Command {
	var weight float64
	var shipping, current string
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Recommend a wall construction for a product weight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := ply.Parse(current)
			if err != nil {
				return fmt.Errorf("--current: %w", err)
			}
			sg, err := strength.Recommend(weight, strength.Shipping(shipping), cur)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n", sg.PlyLabel)
			fmt.Fprintf(w, "dimensions: %s\n", sg.Dimensions)
			fmt.Fprintf(w, "margin:     %s\n", sg.Margin)
			if sg.UnderRated {
				fmt.Fprintf(w, "warning: %s is under-rated for %.1f kg\n", ply.MustLookup(cur).Label, weight)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "Product weight in kg")
	cmd.Flags().StringVar(&shipping, "shipping", string(strength.ShippingStandard), "Shipping type (local, standard, longdist)")
	cmd.Flags().StringVar(&current, "current", ply.Three.String(), "Currently selected ply")
	return cmd
}

// ---------------------------------------------------------------------------
// export
// ---------------------------------------------------------------------------

func newExportCmd() *cobra.Command {
	var f boxFlags
	cmd := &cobra.Command{
		Use:   "export <out.stl>",
		Short: "Write the carton scene as STL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := f.newViewer()
			if err != nil {
				return err
			}
			return exportScene(cmd.OutOrStdout(), v, args[0])
		},
	}
	f.register(cmd)
	return cmd
}

func exportScene(w io.Writer, v *viewer.Viewer, path string) error {
	ds := v.Scene().Descriptors
	if err := sdfx.New().SaveSTL(path, ds); err != nil {
		log.Printf("export: %v", err)
		return err
	}
	fmt.Fprintf(w, "wrote %d parts to %s\n", len(ds), path)
	return nil
}

// ---------------------------------------------------------------------------
// eval
// ---------------------------------------------------------------------------

func newEvalCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "eval <script.carton|->",
		Short: "Evaluate a carton script",
		Long:  "Evaluate a carton script and print the resulting configuration. Use - to read standard input.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			s, err := loadSettings()
			if err != nil {
				return err
			}
			res, err := engine.NewEngineWithSettings(s).EvaluateFull(src)
			if err != nil {
				log.Printf("eval: %v", err)
				return err
			}
			w := cmd.OutOrStdout()
			for _, wn := range res.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", formatPos(wn.Line, wn.Col, wn.Message))
			}
			if len(res.Errors) > 0 {
				for _, e := range res.Errors {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", formatPos(e.Line, e.Col, e.Message))
				}
				return fmt.Errorf("eval: %d error(s)", len(res.Errors))
			}

			v, err := viewer.New(s, viewer.WithConfiguration(*res.Config))
			if err != nil {
				return err
			}
			printScene(w, v)
			if out != "" {
				return exportScene(w, v, out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Also export STL to this path")
	return cmd
}

func readSource(stdin io.Reader, name string) (string, error) {
	if name == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(b), nil
}

func formatPos(line, col int, msg string) string {
	if line > 0 {
		return fmt.Sprintf("%d:%d: %s", line, col, msg)
	}
	return msg
}
