package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"resumegraph/internal/logging"
	"resumegraph/internal/slicer"

	"github.com/spf13/cobra"
)

var (
	sliceOut          string
	sliceRows         int
	sliceCols         int
	sliceNames        string
	sliceContactSheet string
)

const contactSheetThumb = 128

// sliceCmd cuts a portrait sheet
var sliceCmd = &cobra.Command{
	Use:   "slice <image>",
	Short: "Slice a portrait sheet into one PNG per character",
	Long: `Crops a PNG or JPEG sheet into a rows×cols grid of equal cells and writes
each cell to <out>/<name>.png. The default 3×3 sheet uses the built-in
character names; other grids need --names or fall back to portrait_<row>_<col>.

The names file is YAML, one list per row:
  - [Albert-Victor, Lia-Startrace, Marcus-Grayline]`,
	Args: cobra.ExactArgs(1),
	RunE: runSlice,
}

func init() {
	sliceCmd.Flags().StringVarP(&sliceOut, "out", "o", "", "Output directory (default from config: heads)")
	sliceCmd.Flags().IntVar(&sliceRows, "rows", 0, "Grid rows (default from config: 3)")
	sliceCmd.Flags().IntVar(&sliceCols, "cols", 0, "Grid columns (default from config: 3)")
	sliceCmd.Flags().StringVar(&sliceNames, "names", "", "YAML file mapping grid cells to names")
	sliceCmd.Flags().StringVar(&sliceContactSheet, "contact-sheet", "", "Also write a labeled contact sheet PNG to this path")
}

func runSlice(cmd *cobra.Command, args []string) error {
	c := currentConfig()
	grid := slicer.Grid{Rows: c.Slicer.Rows, Cols: c.Slicer.Cols}
	if sliceRows > 0 {
		grid.Rows = sliceRows
	}
	if sliceCols > 0 {
		grid.Cols = sliceCols
	}
	outDir := c.Slicer.OutputDir
	if sliceOut != "" {
		outDir = sliceOut
	}
	contactSheet := c.Slicer.ContactSheet
	if sliceContactSheet != "" {
		contactSheet = sliceContactSheet
	}

	var names [][]string
	switch {
	case sliceNames != "":
		var err error
		if names, err = slicer.LoadNames(sliceNames); err != nil {
			return err
		}
	case len(c.Slicer.Names) > 0:
		names = c.Slicer.Names
	}

	s, err := slicer.New(slicer.Options{
		Grid:   grid,
		Names:  names,
		Logger: categoryLogger(logging.CategorySlicer),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, err := s.SliceFile(ctx, args[0], outDir)
	if err != nil {
		return err
	}
	if contactSheet != "" {
		if err := slicer.WriteContactSheet(contactSheet, paths, s.Names(), contactSheetThumb, grid.Cols); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), sliceReport(paths, contactSheet))
	return nil
}
