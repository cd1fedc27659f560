package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/delliston/liftsim/lift"
)

type commandKind int

const (
	cmdCall commandKind = iota
	cmdWait
	cmdUntilIdle
	cmdStatus
	cmdReset
)

// command is one line of a scenario script:
//
//	call <floor> <up|down>
//	wait <duration>
//	until-idle
//	status
//	reset
type command struct {
	kind  commandKind
	floor lift.Floor
	dir   lift.Direction
	wait  time.Duration
	line  int
}

func parseCommand(text string, line int) (command, bool, error) {
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return command{}, false, nil
	}

	c := command{line: line}
	switch strings.ToLower(fields[0]) {
	case "call":
		if len(fields) != 3 {
			return c, false, fmt.Errorf("line %d: usage: call <floor> <up|down>", line)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return c, false, fmt.Errorf("line %d: bad floor %q", line, fields[1])
		}
		dir, err := lift.ParseDirection(fields[2])
		if err != nil {
			return c, false, fmt.Errorf("line %d: %w", line, err)
		}
		c.kind, c.floor, c.dir = cmdCall, lift.Floor(n), dir
	case "wait":
		if len(fields) != 2 {
			return c, false, fmt.Errorf("line %d: usage: wait <duration>", line)
		}
		d, err := time.ParseDuration(fields[1])
		if err != nil || d < 0 {
			return c, false, fmt.Errorf("line %d: bad duration %q", line, fields[1])
		}
		c.kind, c.wait = cmdWait, d
	case "until-idle":
		c.kind = cmdUntilIdle
	case "status":
		c.kind = cmdStatus
	case "reset":
		c.kind = cmdReset
	default:
		return c, false, fmt.Errorf("line %d: unknown command %q", line, fields[0])
	}
	return c, true, nil
}

func parseScript(r io.Reader) ([]command, error) {
	var cmds []command
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		c, ok, err := parseCommand(scanner.Text(), line)
		if err != nil {
			return nil, err
		}
		if ok {
			cmds = append(cmds, c)
		}
	}
	return cmds, scanner.Err()
}

func formatStatus(s lift.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] t=%v pending=%d\n", s.RunID, s.Now, s.Pending)
	for _, l := range s.Lifts {
		fmt.Fprintf(&b, "  %v\n", l)
	}
	for _, c := range s.Calls {
		fmt.Fprintf(&b, "  call lit: floor %s %s\n", c.Floor, c.Dir)
	}
	return b.String()
}
