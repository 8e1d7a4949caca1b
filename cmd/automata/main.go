// Command automata runs machines written in the description format.
//
//	automata -file m.fa -machine startsWith0 accept 0111 10
//	automata -file m.fa -machine startsWith0 convert
//	automata -file m.fa -machine startsWith0 -maxlen 12 check
//	automata -file m.fa -machine startsWith0 closure S
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	u "github.com/araddon/gou"

	"github.com/coregx/automata"
	"github.com/coregx/automata/dfa"
	"github.com/coregx/automata/format"
	"github.com/coregx/automata/nfa"
)

var errUsage = errors.New("usage: automata -file <path> [-machine <name>] accept|convert|check|closure [args]")

type options struct {
	file     string
	machine  string
	logLevel string
	maxLen   int
	strict   bool
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	fs := flag.NewFlagSet("automata", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := &options{}
	fs.StringVar(&opts.file, "file", "", "machine description file")
	fs.StringVar(&opts.machine, "machine", "", "machine to use, may be omitted if the file holds one")
	fs.StringVar(&opts.logLevel, "loglevel", "info", "log level [debug|info|warn|error]")
	fs.IntVar(&opts.maxLen, "maxlen", 12, "longest input compared by check")
	fs.BoolVar(&opts.strict, "strict", true, "fail on undefined dfa transitions instead of using a dead state")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return opts, fs.Args(), nil
}

func main() {
	opts, rest, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	u.SetupLogging(opts.logLevel)
	u.SetColorIfTerminal()

	if err := run(opts, rest, os.Stdout); err != nil {
		u.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(opts *options, args []string, w io.Writer) error {
	if opts.file == "" || len(args) == 0 {
		return errUsage
	}
	f, err := format.ParseFile(opts.file)
	if err != nil {
		return err
	}
	m, err := pick(f, opts.machine)
	if err != nil {
		return err
	}
	u.Debugf("loaded %s %q from %s", m.Kind, m.Name, opts.file)

	cmd, args := args[0], args[1:]
	switch cmd {
	case "accept":
		return accept(w, m, opts, args)
	case "convert":
		return convert(w, m)
	case "check":
		return check(w, m, opts.maxLen)
	case "closure":
		return closure(w, m, args)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

// pick selects the named machine, or the only one in the file.
func pick(f *format.File, name string) (*format.Machine, error) {
	if name == "" {
		if len(f.Machines) != 1 {
			return nil, fmt.Errorf("file holds %d machines, choose one of [%s] with -machine",
				len(f.Machines), strings.Join(f.Names(), ", "))
		}
		return f.Machines[0], nil
	}
	m, ok := f.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("no machine named %q", name)
	}
	return m, nil
}

func accept(w io.Writer, m *format.Machine, opts *options, inputs []string) error {
	config := dfa.DefaultConfig()
	if !opts.strict {
		config = config.WithPolicy(dfa.Sink)
	}
	engine, err := automata.Compile(m, config)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		ok, err := engine.Accept(in)
		if err != nil {
			return fmt.Errorf("input %q: %w", in, err)
		}
		fmt.Fprintf(w, "%q\t%v\n", in, ok)
	}
	return nil
}

func convert(w io.Writer, m *format.Machine) error {
	desc, err := m.NFA()
	if err != nil {
		return err
	}
	conv, err := dfa.NewBuilder(nfa.New(desc), dfa.DefaultBuildConfig()).Build()
	if err != nil {
		return err
	}
	u.Infof("converted %q into %d states", m.Name, conv.Len())
	return format.WriteDFA(w, m.Name, conv.Description())
}

func check(w io.Writer, m *format.Machine, maxLen int) error {
	desc, err := m.NFA()
	if err != nil {
		return err
	}
	n := nfa.New(desc)
	d, err := automata.ConvertNFA(desc)
	if err != nil {
		return err
	}
	input, found, err := automata.Counterexample(n, d, maxLen)
	if err != nil {
		return err
	}
	if found {
		return fmt.Errorf("converted dfa disagrees with %q on %q", m.Name, input)
	}
	fmt.Fprintf(w, "%s: nfa and dfa agree on all inputs up to length %d\n", m.Name, maxLen)
	return nil
}

func closure(w io.Writer, m *format.Machine, states []string) error {
	desc, err := m.NFA()
	if err != nil {
		return err
	}
	n := nfa.New(desc)
	if len(states) == 0 {
		states = []string{string(n.Start())}
	}
	for _, s := range states {
		fmt.Fprintf(w, "%s\t%v\n", s, n.EpsilonClosure(nfa.State(s)))
	}
	return nil
}
