package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/navijation/njheap/scheduler"
	"github.com/navijation/njheap/util"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func scheduleTasks(_ context.Context, cmd *cli.Command) error {
	log := configureLogging(cmd)

	sched, err := scheduler.New(scheduler.NewArgs{
		CapacityHint: util.Some(int(cmd.Int("capacity"))),
		Logger:       log,
	})
	if err != nil {
		return err
	}

	return scheduleLines(os.Stdin, os.Stdout, sched, log)
}

// scheduleLines submits one task per "priority: name" line, then prints
// tasks in dispatch order. Malformed lines are skipped.
func scheduleLines(reader io.Reader, writer io.Writer, sched *scheduler.Scheduler, log *logrus.Entry) error {
	scanner := bufio.NewScanner(reader)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		fragments := strings.SplitN(text, ":", 2)
		if len(fragments) != 2 {
			log.WithField("line", lineNumber).Warn("entry must be in \"priority: name\" format")
			continue
		}

		priority, err := strconv.Atoi(strings.TrimSpace(fragments[0]))
		if err != nil {
			log.WithField("line", lineNumber).WithError(err).Warn("invalid priority")
			continue
		}

		sched.Submit(strings.TrimSpace(fragments[1]), priority)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read tasks: %w", err)
	}

	buffered := bufio.NewWriter(writer)
	for sched.Pending() > 0 {
		task, err := sched.Next()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(buffered, "%s\t%d\t%s\n", task.ID, task.Priority, task.Name); err != nil {
			return err
		}
	}
	return buffered.Flush()
}
