package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spicery/tsast/pkg/checker"
	"github.com/spicery/tsast/pkg/common"
	"github.com/spicery/tsast/pkg/config"
	"github.com/spicery/tsast/pkg/index"
	"github.com/spicery/tsast/pkg/serializer"
	"github.com/spicery/tsast/pkg/source"
	"github.com/spicery/tsast/pkg/syntax"
	"github.com/spicery/tsast/pkg/treesitter"
)

const formatDetail = "DETAIL"

var errUsage = errors.New("input file is required")

type runner struct {
	cmd    *cobra.Command
	opts   *options
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
	red    *color.Color
	green  *color.Color
	yellow *color.Color
}

func newRunner(cmd *cobra.Command, opts *options, stdout, stderr io.Writer) *runner {
	useColor := opts.colorMode == "on" || (opts.colorMode == "auto" && isTerminal(stderr))
	level := slog.LevelInfo
	switch {
	case opts.debug:
		level = slog.LevelDebug
	case opts.quiet:
		level = slog.LevelError
	}
	return &runner{
		cmd:    cmd,
		opts:   opts,
		stdout: stdout,
		stderr: stderr,
		log:    slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		red:    newColor(useColor, color.FgRed, color.Bold),
		green:  newColor(useColor, color.FgGreen),
		yellow: newColor(useColor, color.FgYellow),
	}
}

func (r *runner) fail(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	r.red.Fprintln(r.stderr, msg)
	return errors.New(msg)
}

func (r *runner) run(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	switch r.opts.colorMode {
	case "auto", "on", "off":
	default:
		return r.fail("Error: invalid --color value %q (want auto, on or off)", r.opts.colorMode)
	}

	cfg, err := r.settings()
	if err != nil {
		return r.fail("Error: %v", err)
	}

	if r.opts.listKinds {
		return r.printKinds(cfg, args)
	}

	if len(args) == 0 {
		_ = r.cmd.Usage()
		return errUsage
	}
	input := args[0]

	if _, err := os.Stat(input); errors.Is(err, fs.ErrNotExist) {
		return r.fail("Error: Input file \"%s\" does not exist.", input)
	}

	if err := r.process(ctx, cfg, input); err != nil {
		return r.fail("Error processing file: %v", err)
	}

	if !r.opts.quiet {
		w := r.stdout
		if cfg.Output == common.StdoutPath {
			w = r.stderr
		}
		r.green.Fprintln(w, "AST successfully generated!")
		fmt.Fprintf(w, "Input: %s\nOutput: %s\n", input, cfg.Output)
	}
	return nil
}

// settings merges, lowest first, the defaults, the --config file and the
// flags given on the command line.
func (r *runner) settings() (config.Config, error) {
	if r.opts.configFile == "" {
		cfg := r.opts.cfg
		cfg.Trivia = !r.opts.noTrivia
		return cfg, nil
	}
	cfg, err := config.Load(r.opts.configFile)
	if err != nil {
		return cfg, err
	}
	r.log.Debug("loaded config", "path", r.opts.configFile)
	set := r.opts.cfg
	r.cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "output":
			cfg.Output = set.Output
		case "no-pos":
			cfg.NoPos = set.NoPos
		case "kind-names":
			cfg.KindNames = set.KindNames
		case "format":
			cfg.Format = set.Format
		case "indent":
			cfg.Indent = set.Indent
		case "trim":
			cfg.Trim = set.Trim
		case "column-unit":
			cfg.ColumnUnit = set.ColumnUnit
		case "lang":
			cfg.Language = set.Language
		case "no-trivia":
			cfg.Trivia = !r.opts.noTrivia
		case "max-depth":
			cfg.MaxDepth = set.MaxDepth
		}
	})
	return cfg, nil
}

func (r *runner) language(cfg config.Config, path string) (*treesitter.Language, error) {
	if cfg.Language != "" {
		return treesitter.ByName(cfg.Language)
	}
	return treesitter.ForPath(path)
}

func (r *runner) printKinds(cfg config.Config, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	lang, err := r.language(cfg, path)
	if err != nil {
		return r.fail("Error: %v", err)
	}
	for i := 0; i < lang.KindCount(); i++ {
		fmt.Fprintf(r.stdout, "%d -> %s\n", i, lang.KindName(syntax.Kind(i)))
	}
	return nil
}

// process parses input and writes the result. Every setting is validated
// before the output file is touched.
func (r *runner) process(ctx context.Context, cfg config.Config, input string) error {
	detail := strings.ToUpper(cfg.Format) == formatDetail
	var printFunc common.PrintFunc
	if !detail {
		var err error
		if printFunc, err = common.PickPrintFunc(cfg.Format); err != nil {
			return err
		}
	}
	serCfg, err := cfg.Serializer()
	if err != nil {
		return err
	}

	file, err := source.Load(input)
	if err != nil {
		return err
	}
	lang, err := r.language(cfg, input)
	if err != nil {
		return err
	}
	r.log.Debug("parsing", "path", file.Path, "language", lang.Name, "bytes", file.Len())

	parser := treesitter.NewParser(lang)
	parser.Trivia = cfg.Trivia
	parser.Log = r.log
	tree, err := parser.Parse(ctx, file)
	if err != nil {
		return err
	}

	chk := checker.NewChecker()
	if !chk.Check(tree) {
		chk.ReportErrors(r.stderr)
		return chk.Err()
	}
	if len(chk.Issues) > 0 && !r.opts.quiet {
		r.yellow.Fprintf(r.stderr, "warning: %d syntax issue(s) in %s\n", len(chk.Issues), file.Path)
		chk.ReportErrors(r.stderr)
	}

	var root *common.Node
	if !detail || r.opts.indexPath != "" {
		if root, err = serializer.Serialize(tree, serCfg); err != nil {
			return err
		}
	}

	// Index first so a failed index leaves the output untouched.
	if r.opts.indexPath != "" {
		if err := r.store(tree, root); err != nil {
			return fmt.Errorf("index: %w", err)
		}
	}

	err = common.WriteFileAtomic(cfg.Output, func(w io.Writer) error {
		if detail {
			return serializer.PrintDetailed(w, tree, serializer.DetailOptions{TrimText: cfg.Trim})
		}
		return printFunc(root, w, cfg.PrintOptions())
	})
	if err != nil {
		return err
	}
	r.log.Debug("wrote output", "path", cfg.Output, "format", cfg.Format)
	return nil
}

func (r *runner) store(tree *syntax.Tree, root *common.Node) (err error) {
	ix, err := index.Open(r.opts.indexPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ix.Close(); err == nil {
			err = cerr
		}
	}()
	if err := ix.Store(tree, root); err != nil {
		return err
	}
	r.log.Debug("indexed", "db", r.opts.indexPath, "path", tree.File.Path)
	return nil
}
