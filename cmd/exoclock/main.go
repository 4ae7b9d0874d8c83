// Command exoclock draws a panel of analog clocks labelled with exotic
// symbol sets and keeps it running in real time.
//
// Usage:
//
//	exoclock run              # animate, writing exoclock.png every second
//	exoclock run --addr :8080 # also serve a live view
//	exoclock render --at 10:08:30 -o clocks.png
//	exoclock list
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// CLI is the command line grammar.
type CLI struct {
	Config    string `help:"Configuration file (default ./exoclock.yaml if present)." short:"c" type:"path"`
	LogLevel  string `help:"Log level." enum:"debug,info,warn,error" default:"info"`
	LogFormat string `help:"Log format." enum:"text,json" default:"text"`

	Run     RunCmd     `cmd:"" help:"Animate the panel until interrupted."`
	Render  RenderCmd  `cmd:"" help:"Draw a single frame and exit."`
	List    ListCmd    `cmd:"" help:"List the built-in label sets."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

func main() {
	if err := Execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "exoclock:", err)
		os.Exit(1)
	}
}

// Execute parses args and runs the selected command.
func Execute(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("exoclock"),
		kong.Description("Real-time analog clocks with exotic hour labels."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	env := newEnv(&cli, stdout, stderr)
	return kctx.Run(env)
}
