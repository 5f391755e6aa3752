package main

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	cerrors "cloudeng.io/errors"
)

type line struct {
	text   string
	number float64
}

func parseLine(text string, numeric bool) (line, error) {
	if !numeric {
		return line{text: text}, nil
	}
	number, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return line{}, fmt.Errorf("line %q is not a number: %w", text, err)
	}
	return line{text: text, number: number}, nil
}

func lineComparator(numeric, reverse bool) func(a, b line) int {
	compare := func(a, b line) int {
		return strings.Compare(a.text, b.text)
	}
	if numeric {
		compare = func(a, b line) int {
			return cmp.Compare(a.number, b.number)
		}
	}
	if reverse {
		return func(a, b line) int {
			return compare(b, a)
		}
	}
	return compare
}

func readLines(reader io.Reader, numeric bool) iter.Seq2[line, error] {
	return func(yield func(line, error) bool) {
		scanner := bufio.NewScanner(reader)
		for scanner.Scan() {
			parsed, err := parseLine(scanner.Text(), numeric)
			if !yield(parsed, err) || err != nil {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(line{}, err)
		}
	}
}

// openFiles opens every path, reporting all failures together.
func openFiles(paths []string) ([]*os.File, error) {
	var (
		files []*os.File
		errs  cerrors.M
	)
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			errs.Append(fmt.Errorf("failed to open %q: %w", path, err))
			continue
		}
		files = append(files, file)
	}

	if err := errs.Err(); err != nil {
		_ = closeFiles(files)
		return nil, err
	}
	return files, nil
}

func closeFiles(files []*os.File) error {
	var errs cerrors.M
	for _, file := range files {
		errs.Append(file.Close())
	}
	return errs.Err()
}

func readersOf(files []*os.File) []io.Reader {
	readers := make([]io.Reader, 0, len(files))
	for _, file := range files {
		readers = append(readers, file)
	}
	return readers
}
