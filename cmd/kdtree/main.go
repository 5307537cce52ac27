package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ar90n/kdtree"
	"github.com/ar90n/kdtree/dataset"
	"github.com/ar90n/kdtree/flat"
	"github.com/ar90n/kdtree/render"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
	"go.uber.org/zap"
)

var (
	ErrVerification = errors.New("kdtree: result differs from exhaustive scan")
	ErrMissingInput = errors.New("kdtree: --input is required")
)

// verifyTolerance absorbs the rounding of distances computed by different code paths.
const verifyTolerance = 1e-9

type command struct {
	logger *zap.Logger
}

func (cmd *command) setup(c *cli.Context) error {
	var err error
	if c.Bool("verbose") {
		cmd.logger, err = zap.NewDevelopment()
	} else {
		cmd.logger, err = zap.NewProduction()
	}
	return errors.Wrap(err, "create logger")
}

func (cmd *command) teardown(c *cli.Context) error {
	if cmd.logger != nil {
		_ = cmd.logger.Sync()
	}
	return nil
}

func (cmd *command) buildTree(c *cli.Context) ([][]float64, *kdtree.Tree[float64], error) {
	inputPath := c.String("input")
	if inputPath == "" {
		return nil, nil, ErrMissingInput
	}
	cmd.logger.Info("reading dataset", zap.String("input", inputPath))
	data, err := dataset.ReadCSVFile(inputPath)
	if err != nil {
		return nil, nil, err
	}

	cmd.logger.Info("building tree", zap.Int("points", len(data)))
	builder := kdtree.NewBuilder[float64]().
		SetMaxGoroutines(c.Uint("max-goroutines")).
		SetLogger(cmd.logger)
	cmd.logger.Debug("builder", zap.String("parameters", builder.GetParameterString()))
	tree, err := builder.Build(data)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "build %s", inputPath)
	}
	cmd.logger.Info("done", zap.Int("nodes", tree.NodeCount()), zap.Int("depth", tree.Depth()))

	return data, tree, nil
}

func (cmd *command) buildAction(c *cli.Context) error {
	_, tree, err := cmd.buildTree(c)
	if err != nil {
		return err
	}

	w := c.App.Writer
	if outputPath := c.String("output"); outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return errors.Wrapf(err, "create %s", outputPath)
		}
		defer file.Close()
		w = file
	}

	return render.Write(w, tree.ToDisplayTree(), c.String("format"))
}

func (cmd *command) searchAction(c *cli.Context) error {
	target, err := dataset.ParsePoint(c.String("target"))
	if err != nil {
		return errors.Wrap(err, "parse target")
	}
	k := c.Int("k")

	data, tree, err := cmd.buildTree(c)
	if err != nil {
		return err
	}

	neighbors, err := tree.Search(target, k)
	if err != nil {
		return err
	}

	if c.Bool("verify") {
		if err := verify(c.Context, data, target, neighbors, c.Uint("max-goroutines")); err != nil {
			return err
		}
		cmd.logger.Info("verified", zap.Int("neighbors", len(neighbors)))
	}

	for _, n := range neighbors {
		writeNeighbor(c.App.Writer, "", n)
	}
	return nil
}

func (cmd *command) nearestAction(c *cli.Context) error {
	target, err := dataset.ParsePoint(c.String("target"))
	if err != nil {
		return errors.Wrap(err, "parse target")
	}

	data, tree, err := cmd.buildTree(c)
	if err != nil {
		return err
	}

	nearest, err := tree.SearchNearest(target)
	if err != nil {
		return err
	}

	if c.Bool("verify") {
		want, err := flat.Nearest(data, target)
		if err != nil {
			return err
		}
		if math.Abs(want.Distance-nearest.Distance) > verifyTolerance {
			return errors.Wrapf(ErrVerification, "nearest distance %g, exhaustive %g", nearest.Distance, want.Distance)
		}
		cmd.logger.Info("verified", zap.Int("index", nearest.Point.Index))
	}

	writeNeighbor(c.App.Writer, "", nearest)
	return nil
}

func (cmd *command) batchAction(c *cli.Context) error {
	queriesPath := c.String("queries")
	targets, err := dataset.ReadCSVFile(queriesPath)
	if err != nil {
		return err
	}

	_, tree, err := cmd.buildTree(c)
	if err != nil {
		return err
	}

	cmd.logger.Info("searching", zap.Int("queries", len(targets)))
	results, err := tree.SearchBatch(c.Context, targets, c.Int("k"), c.Uint("max-goroutines"))
	if err != nil {
		return err
	}
	cmd.logger.Info("done")

	for i, neighbors := range results {
		for _, n := range neighbors {
			writeNeighbor(c.App.Writer, strconv.Itoa(i)+"\t", n)
		}
	}
	return nil
}

func verify(ctx context.Context, data [][]float64, target []float64, neighbors []kdtree.Neighbor[float64], maxGoroutines uint) error {
	want, err := flat.Search(ctx, data, target, uint(len(neighbors)), maxGoroutines)
	if err != nil {
		return err
	}
	if len(want) != len(neighbors) {
		return errors.Wrapf(ErrVerification, "%d neighbors, exhaustive %d", len(neighbors), len(want))
	}
	for i := range want {
		if math.Abs(want[i].Distance-neighbors[i].Distance) > verifyTolerance {
			return errors.Wrapf(ErrVerification, "rank %d distance %g, exhaustive %g", i, neighbors[i].Distance, want[i].Distance)
		}
	}

	return nil
}

func writeNeighbor(w io.Writer, prefix string, n kdtree.Neighbor[float64]) {
	coords := make([]string, len(n.Point.Coords))
	for i, v := range n.Point.Coords {
		coords[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	fmt.Fprintf(w, "%s%d\t%g\t%s\n", prefix, n.Point.Index, n.Distance, strings.Join(coords, ","))
}

func inputFlag() cli.Flag {
	return altsrc.NewStringFlag(&cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "dataset csv, one point per line",
		EnvVars: []string{"KDTREE_INPUT"},
	})
}

func targetFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "target",
		Aliases:  []string{"t"},
		Usage:    "comma separated target coordinates",
		Required: true,
	}
}

func kFlag() cli.Flag {
	return altsrc.NewIntFlag(&cli.IntFlag{
		Name:    "k",
		Value:   1,
		Usage:   "number of neighbors",
		EnvVars: []string{"KDTREE_K"},
	})
}

func verifyFlag() cli.Flag {
	return altsrc.NewBoolFlag(&cli.BoolFlag{
		Name:    "verify",
		Usage:   "check the result against an exhaustive scan",
		EnvVars: []string{"KDTREE_VERIFY"},
	})
}

func withConfig(flags ...cli.Flag) ([]cli.Flag, cli.BeforeFunc) {
	return flags, altsrc.InitInputSourceWithContext(flags, altsrc.NewYamlSourceFromFlagFunc("config"))
}

func newApp(w io.Writer) *cli.App {
	cmd := &command{}

	globalFlags, globalBefore := withConfig(
		&cli.StringFlag{
			Name:    "config",
			Usage:   "yaml file with flag values",
			EnvVars: []string{"KDTREE_CONFIG"},
		},
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name:    "verbose",
			Usage:   "debug logging",
			EnvVars: []string{"KDTREE_VERBOSE"},
		}),
		altsrc.NewUintFlag(&cli.UintFlag{
			Name:    "max-goroutines",
			Value:   0,
			Usage:   "goroutines used to build and search, 0 for one per cpu",
			EnvVars: []string{"KDTREE_MAX_GOROUTINES"},
		}),
	)

	buildFlags, buildBefore := withConfig(
		inputFlag(),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "text",
			Usage:   "output format: " + strings.Join(render.Formats, ", "),
			EnvVars: []string{"KDTREE_FORMAT"},
		}),
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output file, stdout when empty",
		},
	)
	searchFlags, searchBefore := withConfig(inputFlag(), targetFlag(), kFlag(), verifyFlag())
	nearestFlags, nearestBefore := withConfig(inputFlag(), targetFlag(), verifyFlag())
	batchFlags, batchBefore := withConfig(
		inputFlag(),
		&cli.StringFlag{
			Name:     "queries",
			Aliases:  []string{"q"},
			Usage:    "csv of targets, one per line",
			Required: true,
		},
		kFlag(),
	)

	return &cli.App{
		Name:     "kdtree",
		HelpName: "kdtree",
		Usage:    "build k-d trees and query nearest neighbors",
		Writer:   w,
		Flags:    globalFlags,
		Before: func(c *cli.Context) error {
			if err := globalBefore(c); err != nil {
				return err
			}
			return cmd.setup(c)
		},
		After: cmd.teardown,
		Commands: []*cli.Command{
			{
				Name:      "build",
				Aliases:   []string{"export"},
				Usage:     "build a tree and export its structure",
				UsageText: "kdtree build --input data.csv [--format text] [--output path]",
				Flags:     buildFlags,
				Before:    buildBefore,
				Action:    cmd.buildAction,
			},
			{
				Name:      "search",
				Usage:     "find the k nearest neighbors of a target",
				UsageText: "kdtree search --input data.csv --target 3,1,4 [--k 5] [--verify]",
				Flags:     searchFlags,
				Before:    searchBefore,
				Action:    cmd.searchAction,
			},
			{
				Name:      "nearest",
				Usage:     "find the nearest neighbor of a target",
				UsageText: "kdtree nearest --input data.csv --target 3,1,4 [--verify]",
				Flags:     nearestFlags,
				Before:    nearestBefore,
				Action:    cmd.nearestAction,
			},
			{
				Name:      "batch",
				Usage:     "search the k nearest neighbors of many targets concurrently",
				UsageText: "kdtree batch --input data.csv --queries targets.csv [--k 3]",
				Flags:     batchFlags,
				Before:    batchBefore,
				Action:    cmd.batchAction,
			},
		},
	}
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
