package console

// palette maps rendering roles to ANSI sequences.
type palette map[string]string

const ansiReset = "\x1b[0m"

var (
	darkPalette = palette{
		"title":   "\x1b[1;96m",
		"accent":  "\x1b[1;95m",
		"muted":   "\x1b[90m",
		"passed":  "\x1b[1;92m",
		"partial": "\x1b[1;93m",
		"failed":  "\x1b[1;91m",
		"alert":   "\x1b[1;91m",
		"loading": "\x1b[96m",
	}
	lightPalette = palette{
		"title":   "\x1b[1;34m",
		"accent":  "\x1b[1;35m",
		"muted":   "\x1b[2m",
		"passed":  "\x1b[32m",
		"partial": "\x1b[33m",
		"failed":  "\x1b[31m",
		"alert":   "\x1b[1;31m",
		"loading": "\x1b[34m",
	}
	confettiColors = []string{"\x1b[91m", "\x1b[92m", "\x1b[93m", "\x1b[94m", "\x1b[95m", "\x1b[96m"}
)
