package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/chazu/boardsolid/pkg/board"
	"github.com/chazu/boardsolid/pkg/engine"
	"github.com/chazu/boardsolid/pkg/export"
	"github.com/chazu/boardsolid/pkg/kernel"
	"github.com/chazu/boardsolid/pkg/kernel/manifold"
	"github.com/chazu/boardsolid/pkg/kernel/sdfx"
	"github.com/chazu/boardsolid/pkg/tessellate"
	"github.com/spf13/cobra"
)

var (
	outDir     string
	kernelName string
	meshCells  int
	cellSize   float64
	timeout    time.Duration
)

var buildCmd = &cobra.Command{
	Use:   "build <circuit.json>",
	Short: "Build the board solids and export them as STL",
	Long: `Reconstructs the board from its circuit records and writes one binary
STL file per output solid, in output order (board, plated-hole copper, pads,
vias, copper pours), plus a manifest.json with part names and colors.

Use "-" to read the records from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&outDir, "out", "o", "out", "output directory")
	buildCmd.Flags().StringVarP(&kernelName, "kernel", "k", "sdfx", "geometry kernel: sdfx or manifold")
	buildCmd.Flags().IntVar(&meshCells, "mesh-cells", 400, "sdfx marching cubes cells along the longest axis")
	buildCmd.Flags().Float64Var(&cellSize, "cell-size", 0, "sdfx largest cell edge in mm; 0 uses --mesh-cells alone")
	buildCmd.Flags().DurationVar(&timeout, "timeout", engine.DefaultTimeout, "build time limit")
}

// newKernel returns the named geometry backend.
func newKernel(name string) (kernel.Kernel, error) {
	switch name {
	case "sdfx":
		return sdfx.New(sdfx.WithMeshCells(meshCells), sdfx.WithCellSize(cellSize)), nil
	case "manifold":
		return manifold.New()
	default:
		return nil, fmt.Errorf("unknown kernel %q (want sdfx or manifold)", name)
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	elements, err := readElements(args[0])
	if err != nil {
		return fmt.Errorf("error reading circuit: %w", err)
	}
	opts, err := loadOptions(configFile)
	if err != nil {
		return err
	}
	k, err := newKernel(kernelName)
	if err != nil {
		return err
	}

	eng := engine.NewEngine(k, opts)
	eng.Timeout = timeout
	if verbose {
		eng.Progress = func(_ uint64, done, total int) {
			log.Printf("build: %d/%d", done, total)
		}
	}

	start := time.Now()
	res, err := eng.Build(elements)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	defer res.Release()
	built := time.Since(start)

	meshes, err := tessellate.Tessellate(res.Solids, k)
	if err != nil {
		return err
	}
	man, err := export.WriteAll(outDir, meshes, warningStrings(res.Warnings))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Built %d solids in %s\n", len(res.Solids), built.Round(time.Millisecond))
	for _, p := range man.Parts {
		file := p.File
		if file == "" {
			file = "(empty)"
		}
		fmt.Fprintf(out, "  %-40s %8d triangles  %s\n", p.Name, p.Triangles, file)
	}
	if len(res.Warnings) > 0 {
		fmt.Fprintf(out, "  %d elements skipped, see %s\n", len(res.Warnings), export.ManifestName)
	}
	return nil
}

func warningStrings(ws []board.Warning) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}
