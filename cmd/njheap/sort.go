package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/navijation/njheap/util/heap"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

type sortOptions struct {
	capacity int
	numeric  bool
	reverse  bool
}

func sortFiles(_ context.Context, cmd *cli.Command) error {
	log := configureLogging(cmd)

	files, err := openFiles(cmd.Args().Slice())
	if err != nil {
		return err
	}
	defer closeFiles(files)

	readers := readersOf(files)
	if len(readers) == 0 {
		readers = []io.Reader{os.Stdin}
	}

	return sortLines(readers, os.Stdout, sortOptions{
		capacity: int(cmd.Int("capacity")),
		numeric:  cmd.Bool("numeric"),
		reverse:  cmd.Bool("reverse"),
	}, log)
}

func sortLines(readers []io.Reader, writer io.Writer, opts sortOptions, log *logrus.Entry) error {
	lines, err := heap.NewHeap(opts.capacity, lineComparator(opts.numeric, opts.reverse))
	if err != nil {
		return fmt.Errorf("failed to create heap: %w", err)
	}

	for i, reader := range readers {
		for parsed, err := range readLines(reader, opts.numeric) {
			if err != nil {
				return fmt.Errorf("failed to read input %d: %w", i, err)
			}
			lines.Insert(parsed)
		}
	}

	log.WithFields(logrus.Fields{
		"inputs": len(readers),
		"lines":  lines.Size(),
	}).Debug("input loaded")

	buffered := bufio.NewWriter(writer)
	for parsed := range lines.Drain() {
		if _, err := fmt.Fprintln(buffered, parsed.text); err != nil {
			return err
		}
	}
	return buffered.Flush()
}
