// Command brepdemo exercises the brep engine end to end with the
// built-in kernel: primitives, booleans, push/pull and the vertex-move
// rebuild engine, with optional wireframe PNG output and a YAML config
// overlay for the engine tunables.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gocad/brep"
	"github.com/gocad/brep/config"
	"github.com/gocad/brep/kernel"
	_ "github.com/gocad/brep/kernel/mem"
	"github.com/gocad/brep/snapshot"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the flag state and resolved configuration shared by all
// subcommands.
type app struct {
	output  string
	verbose bool
	cfgPath string
	cfg     config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}
	root := &cobra.Command{
		Use:           "brepdemo",
		Short:         "Exercise the brep geometry engine",
		Version:       brep.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.verbose {
				brep.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
			if a.cfgPath != "" {
				cfg, err := config.Load(a.cfgPath)
				if err != nil {
					return err
				}
				a.cfg = cfg
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "write a wireframe PNG to this path")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "YAML config overlaying the engine defaults")
	root.AddCommand(boxCmd(a), cutCmd(a), pushPullCmd(a), moveCmd(a))
	return root
}

func boxCmd(a *app) *cobra.Command {
	var dx, dy, dz float64
	cmd := &cobra.Command{
		Use:   "box",
		Short: "Create a box and print its mesh statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := brep.DefaultKernel()
			if err != nil {
				return err
			}
			s, err := brep.Box(k, brep.P3(0, 0, 0), dx, dy, dz)
			if err != nil {
				return err
			}
			defer s.Release()
			return a.report(cmd, k, s)
		},
	}
	cmd.Flags().Float64Var(&dx, "dx", 4, "box extent along x")
	cmd.Flags().Float64Var(&dy, "dy", 4, "box extent along y")
	cmd.Flags().Float64Var(&dz, "dz", 2, "box extent along z")
	return cmd
}

func cutCmd(a *app) *cobra.Command {
	var radius float64
	cmd := &cobra.Command{
		Use:   "cut",
		Short: "Cut a piercing cylinder out of a box",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := brep.DefaultKernel()
			if err != nil {
				return err
			}
			box, err := brep.Box(k, brep.P3(0, 0, 0), 10, 10, 5)
			if err != nil {
				return err
			}
			defer box.Release()
			tool, err := brep.Cylinder(k, brep.P3(5, 5, -1), brep.V3(0, 0, 1), radius, 7)
			if err != nil {
				return err
			}
			defer tool.Release()

			out, err := brep.Cut(k, box, tool, brep.WithFuzzyTolerance(a.cfg.Boolean.FuzzyTolerance))
			if err != nil {
				return err
			}
			defer out.Release()
			return a.report(cmd, k, out)
		},
	}
	cmd.Flags().Float64Var(&radius, "radius", 2, "cylinder radius")
	return cmd
}

func pushPullCmd(a *app) *cobra.Command {
	var face int
	var offset float64
	cmd := &cobra.Command{
		Use:   "pushpull",
		Short: "Offset one face of a box along its normal",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := brep.DefaultKernel()
			if err != nil {
				return err
			}
			box, err := brep.Box(k, brep.P3(0, 0, 0), 6, 6, 3)
			if err != nil {
				return err
			}
			defer box.Release()

			out, err := brep.PushPull(k, box, face, offset)
			if err != nil {
				return err
			}
			defer out.Release()
			return a.report(cmd, k, out)
		},
	}
	cmd.Flags().IntVar(&face, "face", 1, "face index (kernel iteration order)")
	cmd.Flags().Float64Var(&offset, "offset", 2, "offset along the face normal; negative carves")
	return cmd
}

func moveCmd(a *app) *cobra.Command {
	var dx, dy, dz float64
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Displace one box corner through the rebuild engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := brep.DefaultKernel()
			if err != nil {
				return err
			}
			box, err := brep.Box(k, brep.P3(0, 0, 0), 4, 4, 4)
			if err != nil {
				return err
			}
			defer box.Release()

			corner := brep.P3(0, 0, 0)
			move := brep.VertexMove{From: corner, To: corner.Add(brep.V3(dx, dy, dz))}
			out, err := brep.Rebuild(k, box, []brep.VertexMove{move}, a.cfg.RebuildOptions())
			if err != nil {
				return err
			}
			defer out.Release()
			return a.report(cmd, k, out)
		},
	}
	cmd.Flags().Float64Var(&dx, "dx", 1, "corner displacement along x")
	cmd.Flags().Float64Var(&dy, "dy", 0, "corner displacement along y")
	cmd.Flags().Float64Var(&dz, "dz", 0, "corner displacement along z")
	return cmd
}

func (a *app) report(cmd *cobra.Command, k kernel.Kernel, s kernel.Shape) error {
	mesh, err := brep.Tessellate(k, s, a.cfg.HighProfile())
	if err != nil {
		return err
	}
	b := mesh.Bounds()
	fmt.Fprintf(cmd.OutOrStdout(), "kernel:    %s\n", k.Name())
	fmt.Fprintf(cmd.OutOrStdout(), "faces:     %d\n", len(mesh.Faces))
	fmt.Fprintf(cmd.OutOrStdout(), "triangles: %d\n", mesh.TriangleCount())
	fmt.Fprintf(cmd.OutOrStdout(), "edges:     %d\n", len(mesh.Edges))
	fmt.Fprintf(cmd.OutOrStdout(), "vertices:  %d\n", len(mesh.Vertices))
	fmt.Fprintf(cmd.OutOrStdout(), "bounds:    %v .. %v\n", b.Min, b.Max)

	if a.output != "" {
		img := snapshot.Wireframe(mesh, 800, 600)
		if err := snapshot.SavePNG(a.output, img); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", a.output)
	}
	return nil
}
