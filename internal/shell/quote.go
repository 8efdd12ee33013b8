package shell

import (
	"github.com/kballard/go-shellquote"
)

// Quote joins args into a command line, quoting each one for the shell.
func Quote(args ...string) string {
	return shellquote.Join(args...)
}

// Split breaks a command line into arguments using shell quoting rules.
func Split(line string) ([]string, error) {
	return shellquote.Split(line)
}
