package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/keymatch/jsondiff"
)

const exitDifferences = 1

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jsondiff:", err)
		os.Exit(2)
	}
}

type options struct {
	keys    []string
	format  string
	stats   bool
	noColor bool
}

func newRootCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "jsondiff <old> <new>",
		Short: "generate an RFC 6902 patch between two JSON or YAML documents",
		Long: `jsondiff compares two documents and prints the patch that transforms the
first into the second. Files ending in .yaml or .yml are decoded as YAML,
everything else as JSON.

Arrays of objects can be matched by identity instead of position with --key,
given as a JSON Pointer to the array and the name of its key field:

  jsondiff --key /spec/containers=name old.yaml new.yaml`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, args[0], args[1])
		},
	}

	cmd.Flags().StringArrayVarP(&o.keys, "key", "k", nil, "array key field as <pointer>=<field>, repeatable")
	cmd.Flags().StringVar(&o.format, "format", "patch", "output format: patch or pretty")
	cmd.Flags().BoolVar(&o.stats, "stats", false, "print operation counts")
	cmd.Flags().BoolVar(&o.noColor, "no-color", false, "disable colored output")
	return cmd
}

func run(cmd *cobra.Command, o *options, oldPath, newPath string) error {
	source, err := loadDocument(oldPath)
	if err != nil {
		return err
	}
	target, err := loadDocument(newPath)
	if err != nil {
		return err
	}

	keys, err := parseKeyFlags(o.keys)
	if err != nil {
		return err
	}

	var patch jsondiff.Patch
	if len(keys) > 0 {
		patch, err = jsondiff.DiffKeyed(source, target, keys)
	} else {
		patch, err = jsondiff.Diff(source, target)
	}
	if err != nil {
		return err
	}

	colorize := !o.noColor && isatty.IsTerminal(os.Stdout.Fd())

	switch o.format {
	case "patch":
		data, err := json.MarshalIndent(patch, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case "pretty":
		if err := jsondiff.FormatPretty(cmd.OutOrStdout(), patch, colorize); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", o.format)
	}

	if o.stats {
		stats := jsondiff.CalcStats(patch)
		if colorize {
			fmt.Fprint(cmd.ErrOrStderr(), jsondiff.FormatPrettyStatsColor(stats))
		} else {
			fmt.Fprint(cmd.ErrOrStderr(), jsondiff.FormatPrettyStats(stats))
		}
	}

	if len(patch) > 0 {
		os.Exit(exitDifferences)
	}
	return nil
}

// loadDocument reads and decodes one input file. JSON numbers decode as
// json.Number so the diff compares them by value, not float64 rounding.
func loadDocument(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return doc, nil
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var doc interface{}
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return doc, nil
	}
}

func parseKeyFlags(flags []string) (jsondiff.KeyFields, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	keys := jsondiff.KeyFields{}
	for _, flag := range flags {
		ptr, field, ok := strings.Cut(flag, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --key %q, want <pointer>=<field>", flag)
		}
		keys[ptr] = field
	}
	return keys, nil
}
