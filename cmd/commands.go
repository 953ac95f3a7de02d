package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexaac/amazon-fire-analysis/internal/delivery"
	"github.com/alexaac/amazon-fire-analysis/internal/landsat"
	"github.com/alexaac/amazon-fire-analysis/internal/ui"
)

var (
	sceneDir   string
	outputFile string
	bands      string
	batchRoot  string
	batchKind  string
	workers    int
	mtlPath    string
)

func init() {
	compositeCmd.Flags().StringVar(&sceneDir, "dir", "", "folder holding the scene band rasters")
	compositeCmd.MarkFlagRequired("dir")
	compositeCmd.Flags().StringVar(&outputFile, "output", "", "output raster, relative to --dir unless absolute")
	compositeCmd.Flags().StringVar(&bands, "bands", "4,3,2", "comma separated band ids, e.g. \"5, 6, 4\"")

	nbrCmd.Flags().StringVar(&sceneDir, "dir", "", "folder holding the B5, B7 and MTL files of one scene")
	nbrCmd.MarkFlagRequired("dir")
	nbrCmd.Flags().StringVar(&outputFile, "output", "", "output raster, relative to --dir unless absolute")

	batchCmd.Flags().StringVar(&batchRoot, "root", "", "folder with one scene folder per sub-directory")
	batchCmd.MarkFlagRequired("root")
	batchCmd.Flags().StringVar(&batchKind, "kind", "nbr", "pipeline to run on every scene: nbr or composite")
	batchCmd.Flags().StringVar(&bands, "bands", "4,3,2", "band ids for --kind composite")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "scenes processed in parallel (default BATCH_WORKERS)")

	coefficientsCmd.Flags().StringVar(&mtlPath, "mtl", "", "scene MTL metadata file")
	coefficientsCmd.MarkFlagRequired("mtl")
}

var compositeCmd = &cobra.Command{
	Use:   "composite",
	Short: "stack the selected bands of a scene folder into one multi-band raster",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newProcessor().CompositeBands(sceneDir, outputFile, bands)
		if err != nil {
			return fmt.Errorf("composite %s: %w", sceneDir, err)
		}
		if res != nil {
			ui.PrintSuccess("Composite located at: " + res.Output)
		}
		return nil
	},
}

var nbrCmd = &cobra.Command{
	Use:   "nbr",
	Short: "compute the normalized burn ratio of a scene folder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newProcessor().CalculateNBR(sceneDir, outputFile)
		if err != nil {
			return fmt.Errorf("nbr %s: %w", sceneDir, err)
		}
		if res != nil {
			ui.PrintSuccess("NBR located at: " + res.Output)
			for _, extra := range res.Extras {
				ui.PrintInfo("  " + extra)
			}
		}
		return nil
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "run a pipeline over every scene folder under --root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newProcessor()
		var job delivery.SceneJob
		switch batchKind {
		case "nbr":
			job = p.NBRJob()
		case "composite":
			job = p.CompositeJob(bands)
		default:
			return fmt.Errorf("unknown --kind %q, want nbr or composite", batchKind)
		}
		n := workers
		if n == 0 {
			n = cfg.BatchWorkers
		}

		results, err := delivery.RunBatch(cmd.Context(), batchRoot, job, n, os.Stderr)
		if err != nil {
			return err
		}

		failed := 0
		for _, r := range results {
			switch {
			case r.Err != nil:
				failed++
				ui.PrintError(fmt.Sprintf("%s: %s", r.Dir, r.Err))
			case r.Result == nil:
				ui.PrintWarning(r.Dir + " has no rasters, skipped")
			default:
				ui.PrintInfo(r.Result.Output)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d scenes failed", failed, len(results))
		}
		ui.PrintSuccess(fmt.Sprintf("Processed %d scenes", len(results)))
		return nil
	},
}

var coefficientsCmd = &cobra.Command{
	Use:   "coefficients",
	Short: "print the rescaling coefficients of an MTL file as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := landsat.LoadCoefficients(mtlPath)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	},
}
