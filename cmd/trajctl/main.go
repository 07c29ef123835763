// Command trajctl creates, checks and exports trajectory projects.
//
// Usage:
//
//	trajctl new [-config file] [-name name] project.yaml
//	trajctl export [-config file] [-o out.csv] [-start ms] [-end ms] [-step ms] project.yaml
//	trajctl svg [-axis J1] [-o out.svg] [-precision n] project.yaml
//	trajctl check project.yaml
//
// Projects are read and written as YAML or JSON, depending on the file
// extension. Export writes to standard output unless -o is given.
//
// The configuration file defaults to $TRAJCTL_CONFIG, or config.yaml if
// that is unset. Environment variables may also be set in a .env file in
// the working directory.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/edaniels/golog"
	"github.com/joho/godotenv"

	"honnef.co/go/trajectory"
)

const configEnv = "TRAJCTL_CONFIG"

var errUsage = errors.New("usage: trajctl new|export|svg|check [flags] project")

func main() {
	logger := golog.NewDevelopmentLogger("trajctl")
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded environment from .env")
	}
	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, logger golog.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "new":
		return runNew(args, logger)
	case "export":
		return runExport(args, stdout, logger)
	case "svg":
		return runSVG(args, stdout, logger)
	case "check":
		return runCheck(args, logger)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func defaultConfig() string {
	if p := os.Getenv(configEnv); p != "" {
		return p
	}
	return "config.yaml"
}

func parse(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s: expected exactly one project file", fs.Name())
	}
	return fs.Arg(0), nil
}

func runNew(args []string, logger golog.Logger) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	cfgPath := fs.String("config", defaultConfig(), "configuration `file`")
	name := fs.String("name", "", "project `name`")
	path, err := parse(fs, args)
	if err != nil {
		return err
	}
	f, err := trajectory.FormatForPath(path)
	if err != nil {
		return err
	}
	cfg, err := trajectory.LoadConfigFile(*cfgPath)
	if err != nil {
		return err
	}
	s, err := trajectory.NewProject(trajectory.WithConfig(cfg), trajectory.WithName(*name), trajectory.WithLogger(logger))
	if err != nil {
		return err
	}
	data, err := trajectory.Save(s, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	logger.Infow("created project", "path", path, "id", s.ID().String())
	return nil
}

func load(path string, logger golog.Logger, opts ...trajectory.Option) (*trajectory.Session, error) {
	f, err := trajectory.FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := trajectory.Load(data, f, append(opts, trajectory.WithLogger(logger))...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// warnExceeds logs every axis whose curve overshoots its angle limit.
func warnExceeds(s *trajectory.Session, logger golog.Logger) int {
	n := 0
	for _, a := range trajectory.AllAxes {
		if s.Exceeds(a) {
			logger.Warnw("curve exceeds angle limit between control points", "axis", a.String(), "limit", s.Limit(a).String())
			n++
		}
	}
	return n
}

func runExport(args []string, stdout io.Writer, logger golog.Logger) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	cfgPath := fs.String("config", defaultConfig(), "configuration `file`")
	out := fs.String("o", "", "output `file`")
	start := fs.Int("start", 0, "first sample in `ms`")
	end := fs.Int("end", -1, "last sample in `ms`, defaults to the end of the timeline")
	step := fs.Int("step", 0, "sampling step in `ms`, defaults to the configured step")
	path, err := parse(fs, args)
	if err != nil {
		return err
	}
	cfg, err := trajectory.LoadConfigFile(*cfgPath)
	if err != nil {
		return err
	}
	s, err := load(path, logger, trajectory.WithConfig(cfg))
	if err != nil {
		return err
	}
	warnExceeds(s, logger)

	if *step == 0 {
		*step = s.StepMs()
	}
	if *end < 0 {
		*end = int(s.Playback().Duration() + 0.5)
	}

	var buf bytes.Buffer
	if err := trajectory.ExportCSV(&buf, s, *start, *end, *step); err != nil {
		return err
	}
	if *out == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
		return err
	}
	logger.Infow("exported trajectory", "path", *out, "start", *start, "end", *end, "step", *step)
	return nil
}

func runSVG(args []string, stdout io.Writer, logger golog.Logger) error {
	fs := flag.NewFlagSet("svg", flag.ContinueOnError)
	axis := fs.String("axis", "J1", "`axis` to render")
	out := fs.String("o", "", "output `file`")
	prec := fs.Int("precision", 3, "maximum number of decimals")
	path, err := parse(fs, args)
	if err != nil {
		return err
	}
	a, err := trajectory.ParseAxis(*axis)
	if err != nil {
		return err
	}
	s, err := load(path, logger)
	if err != nil {
		return err
	}

	l := s.Limit(a)
	dur := s.Playback().Duration()
	const height = 200.0
	opts := trajectory.SVGOptions{
		MaxPrecision: *prec,
		TimeScale:    1000 / dur,
		ValueScale:   height / (l.Max - l.Min),
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 %g 1000 %g\">\n", -l.Max*opts.ValueScale, height)
	fmt.Fprintf(&buf, "<path fill=\"none\" stroke=\"black\" d=\"%s\"/>\n", s.SVG(a, opts))
	fmt.Fprintln(&buf, "</svg>")

	if *out == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	return os.WriteFile(*out, buf.Bytes(), 0o644)
}

func runCheck(args []string, logger golog.Logger) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	path, err := parse(fs, args)
	if err != nil {
		return err
	}
	s, err := load(path, logger)
	if err != nil {
		return err
	}
	for _, a := range trajectory.AllAxes {
		lo, hi := s.Bounds(a)
		logger.Infow("axis", "axis", a.String(), "points", len(s.Points(a)), "min", lo, "max", hi)
	}
	if n := warnExceeds(s, logger); n > 0 {
		return fmt.Errorf("%d axes exceed their angle limits", n)
	}
	return nil
}
