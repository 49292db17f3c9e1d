package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fieldpath/internal/analyze"
	"fieldpath/internal/config"
	"fieldpath/internal/gen"
	"fieldpath/propertypath"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fieldpath",
		Short: "Resolve editor property paths",
		Long: `fieldpath resolves dotted, indexed property paths such as
"weapons.Array.data[1].damage" against YAML/JSON documents, and inspects or
generates the accessors Go types expose to such paths.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file (YAML)")

	rootCmd.AddCommand(newGetCmd(), newNormalizeCmd(), newLabelsCmd(), newGenCmd())

	return rootCmd
}

// loadConfig reads --config, or returns the defaults without one.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func newGetCmd() *cobra.Command {
	var (
		file string
		dump bool
	)

	cmd := &cobra.Command{
		Use:   "get PATH",
		Short: "Resolve PATH inside a YAML or JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			doc, err := loadDocument(file)
			if err != nil {
				return err
			}

			v, err := cfg.Finder().Target(doc, args[0])
			if err != nil {
				return err
			}

			if dump {
				fmt.Fprint(cmd.OutOrStdout(), spew.Sdump(v))

				return nil
			}

			out, err := yaml.Marshal(v)
			if err != nil {
				return fmt.Errorf("marshal yaml: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), string(out))

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Document to read, .json or .yaml (required)")
	cmd.Flags().BoolVar(&dump, "dump", false, "Print a Go dump of the value instead of YAML")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize PATH...",
		Short: "Print the compact form and the segments of host paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			for _, arg := range args {
				p, err := propertypath.Parse(arg)
				if err != nil {
					return err
				}

				fmt.Fprintln(w, p.String())

				for i, seg := range p.Segments {
					switch seg.Kind {
					case propertypath.SegmentIndex:
						fmt.Fprintf(w, "  %d %s %s %d\n", i, seg.Kind, seg.Name, seg.Index)
					default:
						fmt.Fprintf(w, "  %d %s %s\n", i, seg.Kind, seg.Name)
					}
				}
			}

			return nil
		},
	}
}

func newLabelsCmd() *cobra.Command {
	var (
		pattern  string
		typeName string
		paths    bool
		depth    int
	)

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List the editor labels of the structs of a package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			graph, err := analyze.NewAnalyzer().LoadPackages(pattern)
			if err != nil {
				return err
			}

			structs := selectStructs(graph, typeName)
			if len(structs) == 0 {
				return fmt.Errorf("no struct types matching %q in %s", typeName, pattern)
			}

			w := cmd.OutOrStdout()
			index := cfg.Index()

			for _, st := range structs {
				fmt.Fprintln(w, st.ID)

				for _, l := range index.LabelsInfo(st) {
					fmt.Fprintf(w, "  %q -> %s%s\n", l.Label, l.Storage, depthNote(l.Depth))
				}

				if !paths {
					continue
				}

				for _, fp := range analyze.FieldPaths(st, depth) {
					fmt.Fprintf(w, "  %s %s\n", fp.Path, analyze.TypeString(fp.Field.Type))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "package", "p", ".", "Package pattern to load")
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Only this struct type")
	cmd.Flags().BoolVar(&paths, "paths", false, "Also list the field paths of each struct")
	cmd.Flags().IntVar(&depth, "depth", 3, "Maximum depth of listed field paths")

	return cmd
}

func depthNote(depth int) string {
	if depth == 0 {
		return ""
	}

	return fmt.Sprintf(" (embedded, depth %d)", depth)
}

// selectStructs returns the structs of every loaded package, or the ones
// named typeName, in package then name order.
func selectStructs(graph *analyze.TypeGraph, typeName string) []*analyze.TypeInfo {
	var out []*analyze.TypeInfo

	for _, pkg := range sortedPackages(graph) {
		for _, st := range graph.Structs(pkg.Path) {
			if typeName == "" || st.ID.Name == typeName {
				out = append(out, st)
			}
		}
	}

	return out
}

func newGenCmd() *cobra.Command {
	var (
		pattern  string
		output   string
		exported bool
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write accessor tables for the structs of a package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			graph, err := analyze.NewAnalyzer().LoadPackages(pattern)
			if err != nil {
				return err
			}

			cfg := gen.DefaultGeneratorConfig()
			cfg.Unexported = !exported

			for _, pkg := range sortedPackages(graph) {
				outDir := output
				if outDir == "" {
					outDir = pkg.Dir
				}

				cfg.OutputDir = outDir

				file, err := gen.NewGenerator(cfg).Generate(graph, pkg.Path)
				if err != nil {
					return err
				}

				written, err := gen.WriteFiles([]gen.GeneratedFile{*file}, outDir)
				if err != nil {
					return err
				}

				for _, path := range written {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ Generated: %s\n", path)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "package", "p", ".", "Package pattern to load")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (defaults to the package directory)")
	cmd.Flags().BoolVar(&exported, "exported-only", false, "Skip unexported fields and methods")

	return cmd
}

func sortedPackages(graph *analyze.TypeGraph) []*analyze.PackageInfo {
	pkgs := make([]*analyze.PackageInfo, 0, len(graph.Packages))
	for _, pkg := range graph.Packages {
		pkgs = append(pkgs, pkg)
	}

	slices.SortFunc(pkgs, func(a, b *analyze.PackageInfo) int {
		return strings.Compare(a.Path, b.Path)
	})

	return pkgs
}
