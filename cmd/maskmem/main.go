// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// maskmem runs programs of masked memory writes and prints the sum of the
// resulting memory.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/dalzilio/maskmem"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	partFlag = &cli.IntFlag{
		Name:  "part",
		Usage: "Part to compute: 1 (value mask), 2 (address mask) or 0 for both",
	}
	addrbitsFlag = &cli.IntFlag{
		Name:  "addrbits",
		Usage: "Number of address bits",
		Value: 36,
	}
	nodesizeFlag = &cli.IntFlag{
		Name:  "nodesize",
		Usage: "Initial capacity of the node table",
		Value: 1 << 10,
	}
	maxnodesFlag = &cli.IntFlag{
		Name:  "maxnodes",
		Usage: "Maximal number of nodes in the table (0 = no limit)",
	}
	compactFlag = &cli.BoolFlag{
		Name:  "compact",
		Usage: "Reclaim unreachable nodes before reporting",
	}
	statsFlag = &cli.BoolFlag{
		Name:  "stats",
		Usage: "Print statistics about the decision diagram",
	}
	dotFlag = &cli.StringFlag{
		Name:  "dot",
		Usage: "Write the decision diagram in DOT format to this file (- for stdout)",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 2,
	}

	runFlags = []cli.Flag{
		configFileFlag,
		partFlag,
		addrbitsFlag,
		nodesizeFlag,
		maxnodesFlag,
		compactFlag,
		statsFlag,
		dotFlag,
		verbosityFlag,
	}
)

var (
	runCommand = &cli.Command{
		Name:      "run",
		Usage:     "Executes a program and prints the sum of the memory",
		ArgsUsage: "<file|->",
		Action:    runAction,
		Flags:     runFlags,
	}
	dumpconfigCommand = &cli.Command{
		Name:   "dumpconfig",
		Usage:  "Exports the effective configuration in TOML format",
		Action: dumpconfigAction,
		Flags:  runFlags,
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:     "maskmem",
		Usage:    "masked memory writes on a shared decision diagram",
		Commands: []*cli.Command{runCommand, dumpconfigCommand},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ************************************************************

func runAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected one input file, got %d arguments", ctx.NArg())
	}
	logger := logrus.New()
	logger.SetOutput(ctx.App.ErrWriter)
	logger.SetLevel(logLevel(cfg.Verbosity))

	prog, err := readProgram(ctx.App.Reader, ctx.Args().First())
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"masks":  len(prog),
		"writes": prog.Len(),
	}).Info("program loaded")

	// We compute every result before printing anything, so that an error
	// produces no partial output.
	var part1 string
	if cfg.Part != 2 {
		part1 = maskmem.SumValues(maskmem.ExecValueMask(prog)).ToBig().String()
	}
	var mem *maskmem.Memory
	if cfg.Part != 1 {
		mem, err = maskmem.ExecAddressMask(prog,
			maskmem.Addrbits(cfg.Addrbits),
			maskmem.Nodesize(cfg.Nodesize),
			maskmem.Maxnodesize(cfg.Maxnodes),
			maskmem.Logger(logger),
		)
		if err != nil {
			return err
		}
		if cfg.Compact {
			logger.WithField("reclaimed", mem.Compact()).Info("node table compacted")
		}
		if cfg.Dot != "" {
			if err := writeDot(ctx.App.Writer, cfg.Dot, mem); err != nil {
				return err
			}
		}
	}

	out := ctx.App.Writer
	if cfg.Part != 2 {
		fmt.Fprintf(out, "part[1]: %s\n", part1)
	}
	if mem != nil {
		fmt.Fprintf(out, "part[2]: %s\n", mem.Sum().ToBig())
		if cfg.Stats {
			printStats(out, mem.Statistics())
		}
	}
	return nil
}

func dumpconfigAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	return toml.NewEncoder(ctx.App.Writer).Encode(cfg)
}

// readProgram parses the program in file, or in stdin if file is "-".
func readProgram(stdin io.Reader, file string) (maskmem.Program, error) {
	if file == "-" {
		return maskmem.Parse(stdin)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	prog, err := maskmem.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return prog, nil
}

func writeDot(stdout io.Writer, file string, mem *maskmem.Memory) error {
	if file == "-" {
		return mem.WriteDot(stdout)
	}
	out, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := mem.WriteDot(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func printStats(w io.Writer, s maskmem.Statistics) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Statistic", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	rows := []struct {
		name  string
		value int
	}{
		{"Address bits", s.Addrbits},
		{"Allocated nodes", s.Allocated},
		{"Produced nodes", s.Produced},
		{"Reachable nodes", s.Reachable},
		{"Terminals", s.Terminals},
		{"Unique access", s.UniqueAccess},
		{"Unique hit", s.UniqueHit},
		{"Unique miss", s.UniqueMiss},
		{"Write cache hit", s.WriteHit},
		{"Write cache miss", s.WriteMiss},
	}
	for _, r := range rows {
		table.Append([]string{r.name, strconv.Itoa(r.value)})
	}
	table.Render()
}
