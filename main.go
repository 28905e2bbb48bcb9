// Copyright
// SPDX-License-Identifier: MIT
// textify: clean up pasted text and compare the result side by side
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"textify/internal/cleaner"
	"textify/internal/config"
	"textify/internal/logging"
	"textify/internal/revision"
	appTUI "textify/internal/tui"
	"textify/internal/tui/state"
	"textify/internal/tui/util"
	"textify/internal/tui/widgets/diff"
)

const Version = "0.1.0"

/* ---------- CLI ---------- */

func main() {
	args := os.Args[1:]
	cmd := "tui"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "help", "-h", "--help":
		if len(args) > 0 {
			helpTopic(args[0])
		} else {
			usage()
		}
		return
	case "version", "-v", "--version":
		fmt.Println("textify", Version)
		return
	case "tui":
		err = cmdTUI(args)
	case "clean":
		err = cmdClean(args)
	case "share":
		err = cmdShare(args)
	case "open":
		err = cmdOpen(args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "textify:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`textify ` + Version + `
Clean up text pasted from AI assistants and compare it with the original.
USAGE
  textify [command] [options]
COMMANDS
  tui          Interactive editor with live diff (default)
  clean        Clean files or stdin and print the result
  share        Print a share link for a file or stdin
  open         Print the text embedded in a share link
  help         Show help (try: textify help clean)
  version      Print version
CONFIG
  textify.yaml in the current directory or ~/.config/textify, then TEXTIFY_* variables.
  GEMINI_API_KEY is read for the gemini backend.`)
}

func helpTopic(name string) {
	switch name {
	case "tui":
		fmt.Println(`USAGE
  textify tui [--config PATH] [--backend gemini|http|local] [--open LINK] [--view split|unified]
              [--no-auto] [--no-color] [cleanup flags] [FILE]
DESCRIPTION
  Opens the editor. FILE, when given, is loaded as the original text.
  Press ? inside for key help and ctrl+k for the command palette.`)
	case "clean":
		fmt.Println(`USAGE
  textify clean [--config PATH] [--backend gemini|http|local] [--diff] [--stats] [-j N]
                [--view unified|split] [--width N] [cleanup flags] [FILE ...]
DESCRIPTION
  Cleans each FILE (or stdin when none is given) and prints the result.
  Files are cleaned concurrently, output stays in argument order.
CLEANUP FLAGS
` + cleanupFlagHelp())
	case "share":
		fmt.Println(`USAGE
  textify share [--base URL] [FILE]
DESCRIPTION
  Prints a link whose fragment carries the text of FILE or stdin.`)
	case "open":
		fmt.Println(`USAGE
  textify open LINK
DESCRIPTION
  Decodes a share link (or a bare #/s/ fragment) and prints its text.`)
	default:
		usage()
	}
}

func cleanupFlagHelp() string {
	var b strings.Builder
	for _, f := range revision.DefaultCleaningConfig().Flags() {
		fmt.Fprintf(&b, "  --%-22s %s\n", f.Name, f.Label)
	}
	b.WriteString("  --regex PATTERN          Replace matches of PATTERN after cleaning\n")
	b.WriteString("  --replace TEXT           Replacement for --regex ($1 expands groups)\n")
	b.WriteString("  --case-sensitive         Match --regex case-sensitively")
	return b.String()
}

/* ---------- shared flags ---------- */

type commonFlags struct {
	configPath    string
	backend       string
	logLevel      string
	toggles       map[string]*bool
	pattern       string
	replacement   string
	caseSensitive bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	c := &commonFlags{toggles: map[string]*bool{}}
	fs.StringVar(&c.configPath, "config", "", "Config file (default: textify.yaml in . or ~/.config/textify)")
	fs.StringVar(&c.backend, "backend", "", "Cleaner backend: gemini|http|local")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	for _, f := range revision.DefaultCleaningConfig().Flags() {
		c.toggles[f.Name] = fs.Bool(f.Name, false, f.Label)
	}
	fs.StringVar(&c.pattern, "regex", "", "Regex to replace after cleaning")
	fs.StringVar(&c.replacement, "replace", "", "Replacement text for --regex")
	fs.BoolVar(&c.caseSensitive, "case-sensitive", false, "Case-sensitive --regex")
	return c
}

// load reads the config and lets flags given on the command line win.
func (c *commonFlags) load(fs *flag.FlagSet) (*config.Config, error) {
	conf, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			conf.Cleaner.Backend = c.backend
		case "log-level":
			conf.Log.Level = c.logLevel
		case "regex":
			conf.Defaults.Regex.Enabled = c.pattern != ""
			conf.Defaults.Regex.Pattern = c.pattern
		case "replace":
			conf.Defaults.Regex.Replacement = c.replacement
		case "case-sensitive":
			conf.Defaults.Regex.CaseSensitive = c.caseSensitive
		default:
			if p, ok := c.toggles[f.Name]; ok {
				conf.Defaults.Set(f.Name, *p)
			}
		}
	})
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

/* ---------- commands ---------- */

func cmdTUI(args []string) error {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	fs.Usage = func() { helpTopic("tui") }
	common := addCommonFlags(fs)
	open := fs.String("open", "", "Share link to load at startup")
	view := fs.String("view", "", "Diff view: split|unified")
	noAuto := fs.Bool("no-auto", false, "Disable auto-clean on paste")
	noColor := fs.Bool("no-color", false, "Disable colors")
	_ = fs.Parse(args)

	conf, err := common.load(fs)
	if err != nil {
		return err
	}
	if *view != "" {
		conf.UI.View = *view
	}

	log := logging.Discard()
	if conf.Log.File != "" {
		logFile, err := logging.OpenFile(conf.Log.File)
		if err != nil {
			return err
		}
		defer logFile.Close()
		log = logging.New(conf.Log.Level, conf.Log.Format, logFile)
	}
	log.Info("textify started", "version", Version, "backend", conf.Cleaner.Backend, "config", conf.File)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cl, err := cleaner.New(ctx, conf.Cleaner, log)
	if err != nil {
		return err
	}

	session := revision.NewSession(revision.WithLogger(log), revision.WithConfig(conf.Defaults))
	if fs.NArg() > 0 {
		text, err := readInput(fs.Arg(0))
		if err != nil {
			return err
		}
		if err := session.SetOriginal(text); err != nil {
			return err
		}
	}

	return appTUI.Run(appTUI.Options{
		Session:    session,
		Cleaner:    cl,
		AutoClean:  conf.AutoClean.Enabled && !*noAuto,
		AutoDelay:  conf.AutoClean.Delay,
		ExportDir:  conf.Export.Dir,
		ShareBase:  conf.Share.BaseURL,
		NoColor:    conf.UI.NoColor || *noColor,
		SideBySide: conf.UI.View == "split",
		AltScreen:  conf.UI.AltScreen,
		Fragment:   *open,
		SaveDefaults: func(d revision.CleaningConfig) error {
			path, err := conf.SavePath()
			if err != nil {
				return err
			}
			log.Info("saving defaults", "path", path)
			return config.SaveDefaults(path, d)
		},
		Log: log,
	})
}

type cleanResult struct {
	name    string
	cleaned string
	segs    []revision.TextSegment
}

func cmdClean(args []string) error {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	fs.Usage = func() { helpTopic("clean") }
	common := addCommonFlags(fs)
	showDiff := fs.Bool("diff", false, "Print the character diff instead of the cleaned text")
	stats := fs.Bool("stats", false, "Print added/removed/unchanged counts to stderr")
	jobs := fs.Int("j", 4, "Files cleaned at once")
	noColor := fs.Bool("no-color", false, "Disable colors in --diff output")
	view := fs.String("view", "", "Lay out --diff as unified or split columns with headers")
	width := fs.Int("width", 0, "Column width for --view (default $COLUMNS or 100)")
	_ = fs.Parse(args)
	if *view != "" && *view != "unified" && *view != "split" {
		return fmt.Errorf("unknown --view %q (want unified or split)", *view)
	}

	conf, err := common.load(fs)
	if err != nil {
		return err
	}
	log := logging.New(conf.Log.Level, conf.Log.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cl, err := cleaner.New(ctx, conf.Cleaner, log)
	if err != nil {
		return err
	}

	files := fs.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	results := make([]cleanResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(*jobs, 1))
	for i, name := range files {
		g.Go(func() error {
			r, err := cleanFile(gctx, cl, conf.Defaults, name, log)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	dv := diff.NewDiffView(util.NewStyles(util.DefaultPalette(), util.NoColor(conf.UI.NoColor || *noColor)))
	for _, r := range results {
		if len(results) > 1 {
			fmt.Printf("==> %s <==\n", r.name)
		}
		if *showDiff {
			fmt.Print(renderDiff(dv, r.segs, *view, termWidth(*width)))
		} else {
			fmt.Print(r.cleaned)
			if !strings.HasSuffix(r.cleaned, "\n") {
				fmt.Println()
			}
		}
		if *stats {
			st := revision.Summarize(r.segs)
			fmt.Fprintf(os.Stderr, "%s: +%d -%d =%d\n", r.name, st.Added, st.Removed, st.Unchanged)
		}
	}
	return nil
}

// renderDiff prints segs as one inline stream, or through the full diff
// view with headers when view is "unified" or "split".
func renderDiff(dv diff.DiffView, segs []revision.TextSegment, view string, width int) string {
	if view == "" {
		return dv.Inline(segs) + "\n"
	}
	ui := state.UIState{View: state.Unified, Width: width, Wrap: true}
	if view == "split" {
		ui.View = state.SideBySide
	}
	return dv.View(ui, segs)
}

func termWidth(flagWidth int) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return 100
}

// cleanFile runs one clean through a session, then the optional regex
// replacement, and diffs the final text against the input.
func cleanFile(ctx context.Context, cl revision.Cleaner, defaults revision.CleaningConfig, name string, log *slog.Logger) (cleanResult, error) {
	text, err := readInput(name)
	if err != nil {
		return cleanResult{}, err
	}
	s := revision.NewSession(revision.WithLogger(log.With("file", name)), revision.WithConfig(defaults))
	if err := s.SetOriginal(text); err != nil {
		return cleanResult{}, err
	}
	if err := s.Run(ctx, cl, revision.KindClean); err != nil {
		return cleanResult{}, err
	}
	out, segs := s.Cleaned(), s.Diff()
	if rx := defaults.Regex; rx.Enabled && rx.Pattern != "" {
		out, err = revision.Matcher{}.ReplaceAll(rx.Pattern, rx.Replacement, rx.CaseSensitive, out)
		if err != nil {
			return cleanResult{}, err
		}
		segs = revision.NewDiffEngine().Diff(s.Original(), out)
	}
	return cleanResult{name: name, cleaned: out, segs: segs}, nil
}

func cmdShare(args []string) error {
	fs := flag.NewFlagSet("share", flag.ExitOnError)
	fs.Usage = func() { helpTopic("share") }
	configPath := fs.String("config", "", "Config file")
	base := fs.String("base", "", "Base URL for the link (default: share.base_url)")
	_ = fs.Parse(args)

	name := "-"
	if fs.NArg() > 0 {
		name = fs.Arg(0)
	}
	text, err := readInput(name)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return revision.ErrNothingToCopy
	}
	if *base == "" {
		conf, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		*base = conf.Share.BaseURL
	}
	fmt.Println(revision.ShareCodec{}.Link(*base, text))
	return nil
}

func cmdOpen(args []string) error {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	fs.Usage = func() { helpTopic("open") }
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("open: expected one link")
	}

	var codec revision.ShareCodec
	token, ok := codec.ParseFragment(fs.Arg(0))
	if !ok {
		return fmt.Errorf("open: %q is not a share link", fs.Arg(0))
	}
	text, err := codec.Decode(token)
	if err != nil {
		return err
	}
	fmt.Print(text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Println()
	}
	return nil
}

// readInput reads a file, or stdin for "-".
func readInput(name string) (string, error) {
	var (
		b   []byte
		err error
	)
	if name == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(name)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}
