/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package logger provides the stderr logger used by hq commands.
package logger

import (
	"io"
	"log"
	"os"
)

// Logger writes warning and debug messages for the resolver and plugin
// loader. The debug channel is silent unless verbose mode is enabled.
type Logger struct {
	log     *log.Logger
	verbose bool
}

// New creates a Logger writing to stderr.
func New(verbose bool) *Logger {
	return &Logger{
		log:     log.New(os.Stderr, "", 0),
		verbose: verbose,
	}
}

// SetOutput redirects log output. Use io.Discard to silence all logging.
func (l *Logger) SetOutput(w io.Writer) {
	l.log.SetOutput(w)
}

// Warning logs a warning message.
func (l *Logger) Warning(format string, args ...any) {
	l.log.Printf("warning: "+format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.log.Printf(format, args...)
}

// Debug logs a debug message when verbose mode is enabled.
func (l *Logger) Debug(format string, args ...any) {
	if l.verbose {
		l.log.Printf(format, args...)
	}
}
