package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/slotforge/slotforge/pkg/profile"
)

// newProfilesCmd creates the profiles command group.
func newProfilesCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List catalog profiles",
		Long:  `Profiles lists the built-in extrusion catalog plus any TOML overlay entries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}
			printProfileTable(catalog)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one profile spec as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}
			spec, err := catalog.Get(args[0])
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(spec, "", "  ")
			if err != nil {
				return fmt.Errorf("encode spec: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "TOML file with extra or overriding profiles")
	cmd.AddCommand(show)
	return cmd
}

// loadCatalog builds the catalog, applying the overlay file when given.
func loadCatalog(path string) (*profile.Catalog, error) {
	catalog := profile.NewCatalog()
	if path != "" {
		if err := catalog.LoadOverlay(path); err != nil {
			return nil, fmt.Errorf("load catalog overlay: %w", err)
		}
	}
	return catalog, nil
}

// printProfileTable renders the catalog as a styled table.
func printProfileTable(catalog *profile.Catalog) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return StyleTitle.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		}).
		Headers("PROFILE", "SIZE", "SLOT DEPTH", "NECK", "BORE", "TAP")

	for _, s := range catalog.Specs() {
		t.Row(
			s.Name,
			fmt.Sprintf("%g x %g %s", s.Width, s.Height, s.Unit),
			fmt.Sprintf("%g", s.SlotDepth),
			fmt.Sprintf("%g", s.SlotNeck),
			fmt.Sprintf("%g", s.CenterBoreDiameter),
			fmt.Sprintf("%g", s.EndTapDiameter),
		)
	}

	fmt.Println(t.Render())
	printDetail("%d profiles", len(catalog.Names()))
}
