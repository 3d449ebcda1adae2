package jsondiff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	addColor     = color.New(color.FgGreen)
	removeColor  = color.New(color.FgRed)
	replaceColor = color.New(color.FgBlue)
	moveColor    = color.New(color.FgCyan)
	copyColor    = color.New(color.FgCyan)
	neutralColor = color.New(color.FgWhite)
)

// FormatPrettyString is a convenience wrapper that outputs to a string
// instead of an io.Writer
func FormatPrettyString(patch Patch, colorize bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, patch, colorize); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes a one-line-per-operation report to w. If colorize is
// true it writes
// red "-" for removals
// green "+" for additions
// blue "~" for replacements
// cyan ">" for moves and "*" for copies
func FormatPretty(w io.Writer, patch Patch, colorize bool) error {
	for _, op := range patch {
		line, err := formatOperation(op)
		if err != nil {
			return err
		}
		if colorize {
			line = opColor(op.Op).Sprint(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatOperation(op Operation) (string, error) {
	switch op.Op {
	case OpRemove:
		return fmt.Sprintf("- %s", op.Path), nil
	case OpMove:
		return fmt.Sprintf("> %s -> %s", op.From, op.Path), nil
	case OpCopy:
		return fmt.Sprintf("* %s -> %s", op.From, op.Path), nil
	}

	data, err := json.Marshal(op.Value)
	if err != nil {
		return "", err
	}
	switch op.Op {
	case OpAdd:
		return fmt.Sprintf("+ %s: %s", op.Path, data), nil
	case OpReplace:
		return fmt.Sprintf("~ %s: %s", op.Path, data), nil
	}
	return fmt.Sprintf("? %s: %s", op.Path, data), nil
}

func opColor(op Op) *color.Color {
	switch op {
	case OpAdd:
		return addColor
	case OpRemove:
		return removeColor
	case OpReplace:
		return replaceColor
	case OpMove:
		return moveColor
	case OpCopy:
		return copyColor
	}
	return neutralColor
}

// FormatPrettyStats prints a string of stats info
func FormatPrettyStats(s *Stats) string {
	return formatStats(s, false)
}

// FormatPrettyStatsColor prints a string of stats info with ANSI colors
func FormatPrettyStatsColor(s *Stats) string {
	return formatStats(s, true)
}

func formatStats(s *Stats, colorize bool) string {
	if s == nil {
		return "<nil>"
	}

	sprint := func(c *color.Color, format string, args ...interface{}) string {
		if colorize {
			return c.Sprintf(format, args...)
		}
		return fmt.Sprintf(format, args...)
	}

	buf := &bytes.Buffer{}
	buf.WriteString(sprint(neutralColor, "%d %s.", s.Total(), plural(s.Total(), "operation")))
	buf.WriteString(sprint(addColor, " %d %s.", s.Adds, plural(s.Adds, "add")))
	buf.WriteString(sprint(removeColor, " %d %s.", s.Removes, plural(s.Removes, "remove")))
	buf.WriteString(sprint(replaceColor, " %d %s.", s.Replaces, plural(s.Replaces, "replace")))
	if s.Moves > 0 {
		buf.WriteString(sprint(moveColor, " %d %s.", s.Moves, plural(s.Moves, "move")))
	}
	if s.Copies > 0 {
		buf.WriteString(sprint(copyColor, " %d %s.", s.Copies, plural(s.Copies, "copy")))
	}
	buf.WriteRune('\n')
	return buf.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	if word == "copy" {
		return "copies"
	}
	return word + "s"
}
