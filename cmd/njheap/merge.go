package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/navijation/njheap/merge"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func mergeFiles(_ context.Context, cmd *cli.Command) error {
	log := configureLogging(cmd)

	if cmd.Args().Len() < 1 {
		return errors.New("usage: merge src_path1 [src_path2 ...]")
	}

	files, err := openFiles(cmd.Args().Slice())
	if err != nil {
		return err
	}
	defer closeFiles(files)

	return mergeLines(readersOf(files), os.Stdout, cmd.Bool("numeric"), cmd.Bool("dedupe"), log)
}

func mergeLines(readers []io.Reader, writer io.Writer, numeric, dedupe bool, log *logrus.Entry) error {
	sources := make([]iter.Seq2[line, error], 0, len(readers))
	for _, reader := range readers {
		sources = append(sources, readLines(reader, numeric))
	}

	var written int
	buffered := bufio.NewWriter(writer)
	for parsed, err := range merge.Sorted(merge.SortedArgs[line]{
		Sources: sources,
		Compare: lineComparator(numeric, false),
		Dedupe:  dedupe,
	}) {
		if err != nil {
			return fmt.Errorf("failed to merge inputs: %w", err)
		}
		if _, err := fmt.Fprintln(buffered, parsed.text); err != nil {
			return err
		}
		written++
	}

	log.WithFields(logrus.Fields{
		"inputs": len(readers),
		"lines":  written,
	}).Debug("inputs merged")

	return buffered.Flush()
}
