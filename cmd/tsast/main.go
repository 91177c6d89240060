package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spicery/tsast"
	"github.com/spicery/tsast/pkg/config"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configFile string
	indexPath  string
	colorMode  string
	quiet      bool
	debug      bool
	listKinds  bool
	noTrivia   bool
	cfg        config.Config
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{cfg: config.Default()}
	cmd := &cobra.Command{
		Use:           "tsast <input-file>",
		Short:         "Dump the syntax tree of a TypeScript or JavaScript file",
		Long:          `Parse a TypeScript, TSX or JavaScript file and write its complete, lossless syntax tree as JSON (or another format).`,
		Example:       "  tsast example.ts -o ast.json\n  tsast example.js --no-pos -f yaml -o -",
		Args:          cobra.MaximumNArgs(1),
		Version:       tsast.Version().String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newRunner(cmd, opts, stdout, stderr)
			return r.run(cmd.Context(), args)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	def := opts.cfg
	flags := cmd.Flags()
	flags.StringVarP(&opts.cfg.Output, "output", "o", def.Output, "output file (- for stdout)")
	flags.BoolVar(&opts.cfg.NoPos, "no-pos", def.NoPos, "omit line/column positions")
	flags.BoolVar(&opts.cfg.KindNames, "kind-names", def.KindNames, "add the symbolic kind name to every node")
	flags.StringVarP(&opts.cfg.Format, "format", "f", def.Format, "output format (json|yaml|msgpack|asciitree|dot|detail)")
	flags.IntVar(&opts.cfg.Indent, "indent", def.Indent, "indentation for json and yaml (0 for compact json)")
	flags.IntVar(&opts.cfg.Trim, "trim", def.Trim, "trim leaf text to this width in display formats")
	flags.StringVar(&opts.cfg.ColumnUnit, "column-unit", def.ColumnUnit, "column unit (utf16|byte|rune)")
	flags.StringVar(&opts.cfg.Language, "lang", def.Language, "language (typescript|tsx|javascript), default from extension")
	flags.BoolVar(&opts.noTrivia, "no-trivia", false, "drop whitespace and comment leaves")
	flags.IntVar(&opts.cfg.MaxDepth, "max-depth", def.MaxDepth, "fail when the tree is deeper than this (0 = unlimited)")
	flags.StringVar(&opts.indexPath, "index", "", "also store the tree in this SQLite database")
	flags.StringVar(&opts.configFile, "config", "", "load settings from a .yaml, .yml or .toml file")
	flags.BoolVar(&opts.listKinds, "list-kinds", false, "print the kind table of the language and exit")
	flags.BoolVar(&opts.quiet, "quiet", false, "suppress the summary and syntax warnings")
	flags.BoolVar(&opts.debug, "debug", false, "log debugging information")
	flags.StringVar(&opts.colorMode, "color", "auto", "colorize messages (auto|on|off)")
	return cmd
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newColor(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
