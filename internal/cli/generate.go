package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slotforge/slotforge/pkg/builder"
	"github.com/slotforge/slotforge/pkg/geom/sandbox"
	"github.com/slotforge/slotforge/pkg/pipeline"
	"github.com/slotforge/slotforge/pkg/profile"
	"github.com/slotforge/slotforge/pkg/render"
	"github.com/slotforge/slotforge/pkg/session"
	"github.com/slotforge/slotforge/pkg/units"
)

// newGenerateCmd creates the generate command for building extrusion models.
func newGenerateCmd() *cobra.Command {
	var (
		profileName  string
		lengthExpr   string
		centerBore   bool
		endTaps      bool
		construction bool
		strategyName string
		format       string
		outPath      string
		catalogPath  string
		workingUnit  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a T-slot extrusion model",
		Long: `Generate builds a parametric T-slot extrusion bar from a catalog profile.

The bar is extruded symmetrically about the origin, slot cutouts are cut
along all four faces, and optional detail features (center bore, end tap
pilots, construction geometry) are added on top.

Without --profile, an interactive picker lists the catalog.

Output formats:
  json         build report (default)
  svg          cross-section line art
  dot          feature history graph
  history-svg  feature history rendered through Graphviz`,
		Example: `  slotforge generate --profile "80/20 1010 (1\" x 1\")" --length 500mm
  slotforge generate --profile "Misumi 3030" --length 12in --center-bore --end-taps
  slotforge generate --format svg --out section.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			catalog := profile.NewCatalog()
			if catalogPath != "" {
				if err := catalog.LoadOverlay(catalogPath); err != nil {
					return fmt.Errorf("load catalog overlay: %w", err)
				}
				logger.Debug("catalog overlay loaded", "path", catalogPath)
			}

			if profileName == "" {
				name, err := pickProfile(catalog)
				if err != nil {
					return err
				}
				if name == "" {
					printInfo("no profile selected")
					return nil
				}
				profileName = name
			}

			length, err := units.ParseLength(lengthExpr, units.Millimeter)
			if err != nil {
				return fmt.Errorf("parse --length: %w", err)
			}
			strategy, err := builder.ParseStrategy(strategyName)
			if err != nil {
				return fmt.Errorf("parse --strategy: %w", err)
			}

			opts := pipeline.Options{
				Profile:      profileName,
				Length:       length,
				CenterBore:   centerBore,
				EndTaps:      endTaps,
				Construction: construction,
				Strategy:     strategy,
				WorkingUnit:  units.Unit(workingUnit),
				Logger:       logger,
			}

			prog := newProgress(logger)
			runner := pipeline.NewRunner(catalog, logger)
			sess := session.Open(sandbox.NewDocument(), logger)
			defer sess.Close()

			result, err := runner.Execute(cmd.Context(), sess, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Built %s", profileName))

			out, err := renderOutput(result, format, construction)
			if err != nil {
				return err
			}
			if err := writeOutput(out, outPath); err != nil {
				return err
			}

			printSuccess("Generated %s", StyleHighlight.Render(result.Report.Component))
			printBuildStats(result.SlotIslands, len(result.Report.Holes), false)
			if outPath != "" {
				printFile(outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "catalog profile name (interactive picker if omitted)")
	cmd.Flags().StringVarP(&lengthExpr, "length", "l", "500mm", "bar length, with optional unit suffix (mm, cm, in)")
	cmd.Flags().BoolVar(&centerBore, "center-bore", false, "drill the through center bore")
	cmd.Flags().BoolVar(&endTaps, "end-taps", false, "drill tap pilot holes into both end faces")
	cmd.Flags().BoolVar(&construction, "construction", true, "add slot centerline axes and planes")
	cmd.Flags().StringVar(&strategyName, "strategy", "direct", "hole subtraction strategy: direct or toolbody")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, svg, dot, or history-svg")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (stdout if omitted)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "TOML file with extra or overriding profiles")
	cmd.Flags().StringVar(&workingUnit, "working-unit", "mm", "unit geometry is computed in: mm, cm, or in")

	return cmd
}

// renderOutput serializes a build result in the requested format.
func renderOutput(result *pipeline.Result, format string, construction bool) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result.Report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode report: %w", err)
		}
		return append(data, '\n'), nil

	case "svg":
		return render.SectionSVG(sectionOf(result, construction)), nil

	case "dot", "history-svg":
		comp, ok := result.Component.(*sandbox.Component)
		if !ok {
			return nil, fmt.Errorf("%s output requires a sandbox document", format)
		}
		dot := render.HistoryDOT(comp.History())
		if format == "dot" {
			return []byte(dot), nil
		}
		return render.HistorySVG(dot)

	default:
		return nil, fmt.Errorf("unknown format %q (want json, svg, dot, or history-svg)", format)
	}
}

// sectionOf maps a build result onto the renderer's cross-section form.
func sectionOf(result *pipeline.Result, construction bool) render.Section {
	s := render.Section{
		Width:              result.Resolved.Width,
		Height:             result.Resolved.Height,
		SlotDepth:          result.Resolved.SlotDepth,
		SlotNeck:           result.Resolved.SlotNeck,
		SlotOpen:           result.Resolved.SlotOpen,
		SlotCenterFromFace: result.Resolved.SlotCenterFromFace,
		Construction:       construction,
	}
	for _, h := range result.Report.Holes {
		if h.Through {
			s.BoreDiameter = h.Diameter
		}
	}
	return s
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(data []byte, path string) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
