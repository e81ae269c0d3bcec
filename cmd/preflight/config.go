package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix is the prefix of the environment variables that can stand in
// for flags, e.g. PREFLIGHT_ORIGIN for --origin.
const envPrefix = "PREFLIGHT"

// names of the flags, which double as viper keys
const (
	flagMethod        = "method"
	flagHeaders       = "headers"
	flagOrigin        = "origin"
	flagRequireOrigin = "require-origin"
	flagNoColor       = "no-color"
	flagPlain         = "plain"
	flagLogLevel      = "log-level"
	flagEnvFile       = "env-file"
	flagHelp          = "help"
	flagVersion       = "version"
)

type config struct {
	args          []string // positional arguments
	method        string
	headers       string
	origin        string
	requireOrigin bool
	noColor       bool
	plain         bool
	logLevel      logrus.Level
	help          bool
	version       bool
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	fs.StringP(flagMethod, "m", "", "HTTP method to check for. Defaults to GET.")
	fs.StringP(flagHeaders, "e", "", "Comma separated list of headers to check for. Ex: content-type,x-pingother")
	fs.StringP(flagOrigin, "o", "", "Set the origin for the request.")
	fs.Bool(flagRequireOrigin, false, "Reject invocations that specify no origin.")
	fs.Bool(flagNoColor, false, "Disable colored output.")
	fs.Bool(flagPlain, false, "Print tagged, machine-readable lines instead.")
	fs.String(flagLogLevel, logrus.WarnLevel.String(), "Level of diagnostic logs written to stderr.")
	fs.String(flagEnvFile, "", "Load environment variables from a dotenv file.")
	fs.BoolP(flagHelp, "h", false, "Show this help.")
	fs.BoolP(flagVersion, "v", false, "Show the version.")
	return fs
}

// loadConfig parses args. Options that are not set on the command line fall
// back to the environment (see envPrefix), possibly populated from the
// dotenv file named by --env-file.
func loadConfig(fs *pflag.FlagSet, args []string) (*config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if envFile, _ := fs.GetString(flagEnvFile); envFile != "" {
		// Variables already set in the environment take precedence.
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading env file: %w", err)
		}
	}
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	level, err := logrus.ParseLevel(v.GetString(flagLogLevel))
	if err != nil {
		return nil, err
	}
	cfg := config{
		args:          fs.Args(),
		method:        v.GetString(flagMethod),
		headers:       v.GetString(flagHeaders),
		origin:        v.GetString(flagOrigin),
		requireOrigin: v.GetBool(flagRequireOrigin),
		noColor:       v.GetBool(flagNoColor),
		plain:         v.GetBool(flagPlain),
		logLevel:      level,
		// help and version are only read from the command line
		help:    mustGetBool(fs, flagHelp),
		version: mustGetBool(fs, flagVersion),
	}
	return &cfg, nil
}

func mustGetBool(fs *pflag.FlagSet, name string) bool {
	b, err := fs.GetBool(name)
	if err != nil {
		panic(err)
	}
	return b
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "%s v%s\n", name, version)
	fmt.Fprintln(w, "Performs a CORS preflight request and verifies the response.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  preflight <url> [<options>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Every option can also be set through an environment variable, e.g. %s_ORIGIN.\n", envPrefix)
}
