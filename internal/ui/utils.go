package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

var (
	blue   = color.New(color.FgBlue)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	cyan   = color.New(color.FgCyan)
)

// Messenger is the message log the pipelines report progress to.
type Messenger interface {
	Info(message string)
	Warn(message string)
}

// Console writes pipeline messages to a terminal. Safe for concurrent use
// so batch workers can share one.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole() *Console {
	return &Console{out: color.Output}
}

// NewConsoleTo is NewConsole writing to w instead of stdout.
func NewConsoleTo(w io.Writer) *Console {
	return &Console{out: w}
}

func (c *Console) Info(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	blue.Fprintln(c.out, message)
}

func (c *Console) Warn(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	yellow.Fprintf(c.out, "Warning: %s\n", message)
}

// PrintBanner prints the application name in large letters
func PrintBanner(name string) {
	cyan.Println(figure.NewFigure(name, "isometric1", true).String())
	fmt.Println()
}

// PrintWarning displays a warning message with consistent formatting
func PrintWarning(message string) {
	yellow.Printf("\nWarning:\n%s\n", message)
}

// PrintError displays an error message with consistent formatting
func PrintError(message string) {
	red.Fprintf(os.Stderr, "\nError: %s\n", message)
}

// PrintSuccess displays a success message with consistent formatting
func PrintSuccess(message string) {
	green.Printf("\n%s\n", message)
}

// PrintInfo displays an info message with consistent formatting
func PrintInfo(message string) {
	blue.Println(message)
}
