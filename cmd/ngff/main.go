package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ngff-go/ngff"
)

var log = logrus.New()

func main() {
	_ = godotenv.Load()
	configureLogging()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	case "show":
		showCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "ngff CLI\n\nUsage:\n  ngff validate [-revision 0.4] [-strict-dup] [-q] FILE...\n  ngff show [-revision 0.4] FILE\n\nFiles ending in .yaml or .yml are read as YAML, everything else as JSON.\nEnvironment: NGFF_REVISION sets the default -revision, NGFF_LOG_LEVEL the\nlog level. A .env file in the working directory is honored.")
}

func configureLogging() {
	log.SetOutput(os.Stderr)
	if lvl := os.Getenv("NGFF_LOG_LEVEL"); lvl != "" {
		parsed, err := logrus.ParseLevel(lvl)
		if err != nil {
			log.Warnf("unknown NGFF_LOG_LEVEL %q, using %s", lvl, log.GetLevel())
			return
		}
		log.SetLevel(parsed)
	}
}

func defaultRevision() string {
	if v := os.Getenv("NGFF_REVISION"); v != "" {
		return v
	}
	return "0.4"
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var revision string
	var strictDup bool
	var quiet bool
	fs.StringVar(&revision, "revision", defaultRevision(), "metadata revision to validate against (0.4, 0.5-dev, 0.5.dev)")
	fs.BoolVar(&strictDup, "strict-dup", false, "treat duplicated JSON keys as fatal")
	fs.BoolVar(&quiet, "q", false, "report fatal issues only, no warnings or ok lines")
	_ = fs.Parse(args)
	files := fs.Args()
	if len(files) == 0 {
		fs.Usage()
		os.Exit(2)
	}

	opt := parseOptions(revision, strictDup)

	type report struct {
		warnings ngff.Warnings
		err      error
	}
	reports := make([]report, len(files))
	var g errgroup.Group
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			log.WithField("file", file).Debug("validating")
			ws, err := validateFile(file, opt)
			reports[i] = report{warnings: ws, err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, file := range files {
		r := reports[i]
		if r.err != nil {
			failed++
			printError(file, r.err)
			continue
		}
		if quiet {
			continue
		}
		for _, w := range r.warnings {
			fmt.Printf("%s: warning: %s [%s %s]\n", file, w.Message, w.Code, pathOrRoot(w.Path))
		}
		fmt.Printf("%s: ok\n", file)
	}
	if failed > 0 {
		log.WithField("failed", failed).Error("validation failed")
		os.Exit(1)
	}
}

func showCmd(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	var revision string
	fs.StringVar(&revision, "revision", defaultRevision(), "metadata revision to validate against (0.4, 0.5-dev, 0.5.dev)")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	file := fs.Arg(0)

	opt := parseOptions(revision, false)
	ga, _, err := loadGroupAttrs(file, opt)
	if err != nil {
		printError(file, err)
		os.Exit(1)
	}
	doc, err := ngff.EncodeGroupAttrs(ga, opt.Policy)
	if err != nil {
		printError(file, err)
		os.Exit(1)
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		fatalf("encode: %v", err)
	}
	fmt.Println(string(out))
}

func parseOptions(revision string, strictDup bool) ngff.ParseOpt {
	rev, ok := ngff.RevisionFromString(revision)
	if !ok {
		fatalf("unknown revision %q (want 0.4, 0.5-dev or 0.5.dev)", revision)
	}
	opt := ngff.ParseOpt{Policy: ngff.PolicyFor(rev)}
	if strictDup {
		opt.Strictness.OnDuplicateKey = ngff.Error
	} else {
		opt.Strictness.OnDuplicateKey = ngff.Warn
	}
	return opt
}

func validateFile(file string, opt ngff.ParseOpt) (ngff.Warnings, error) {
	_, ws, err := loadGroupAttrs(file, opt)
	return ws, err
}

func loadGroupAttrs(file string, opt ngff.ParseOpt) (ngff.GroupAttrs, ngff.Warnings, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return ngff.GroupAttrs{}, nil, err
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return ngff.ImportYAMLGroupAttrs(data, opt)
	default:
		return ngff.ParseGroupAttrs(data, opt)
	}
}

func printError(file string, err error) {
	if iss, ok := ngff.AsIssues(err); ok {
		for _, is := range iss {
			fmt.Printf("%s: error: %s [%s %s]\n", file, is.Message, is.Code, pathOrRoot(is.Path))
		}
		return
	}
	fmt.Printf("%s: error: %v\n", file, err)
}

func pathOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
