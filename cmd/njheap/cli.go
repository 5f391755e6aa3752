package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "njheap",
		Usage: "order lines and tasks with a binary heap",
		Commands: []*cli.Command{
			{
				Name:      "sort",
				Usage:     "heap-sort lines from files or stdin",
				ArgsUsage: "[file ...]",
				Action:    sortFiles,
				Flags: []cli.Flag{
					verboseFlag(),
					capacityFlag(),
					numericFlag(),
					&cli.BoolFlag{
						Name:  "reverse",
						Usage: "emit the largest line first",
					},
				},
			},
			{
				Name:      "merge",
				Usage:     "merge files that are already sorted",
				ArgsUsage: "src_path1 [src_path2 ...]",
				Action:    mergeFiles,
				Flags: []cli.Flag{
					verboseFlag(),
					numericFlag(),
					&cli.BoolFlag{
						Name:  "dedupe",
						Usage: "emit equal lines once, keeping the one from the last file",
					},
				},
			},
			{
				Name:   "schedule",
				Usage:  "read \"priority: name\" lines from stdin and print the dispatch order",
				Action: scheduleTasks,
				Flags: []cli.Flag{
					verboseFlag(),
					capacityFlag(),
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}

// configureLogging returns the logger used by an action.
func configureLogging(cmd *cli.Command) *logrus.Entry {
	logrus.SetOutput(os.Stderr)
	if cmd.Bool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return logrus.WithField("command", cmd.Name)
}

func verboseFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "verbose",
		Usage: "log debug output to stderr",
	}
}

func capacityFlag() cli.Flag {
	return &cli.IntFlag{
		Name:        "capacity",
		DefaultText: "64",
		Value:       64,
		Usage:       "initial heap capacity",
	}
}

func numericFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "numeric",
		Usage: "compare lines as numbers",
	}
}
