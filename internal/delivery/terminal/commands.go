package terminal

import "strings"

type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdReload
)

// parseCommand recognizes ":q" (quit) and ":r" (reload) at the start of a line.
func parseCommand(line string) command {
	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, ":q"):
		return cmdQuit
	case strings.HasPrefix(line, ":r"):
		return cmdReload
	default:
		return cmdNone
	}
}
