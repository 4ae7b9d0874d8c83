package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/go-drift/exoclock/pkg/labels"
)

// ListCmd prints the built-in label sets.
type ListCmd struct {
	Labels bool `help:"Show the twelve labels of each set, 12 o'clock first." short:"l"`
}

func (c *ListCmd) Run(env *Env) error {
	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	for _, name := range labels.Names() {
		spec, err := labels.Lookup(name)
		if err != nil {
			return err
		}
		if c.Labels {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", name, spec.Title, spec.Labels)
		} else {
			fmt.Fprintf(tw, "%s\t%s\n", name, spec.Title)
		}
	}
	return tw.Flush()
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (VersionCmd) Run(env *Env) error {
	_, err := fmt.Fprintf(env.Stdout, "exoclock version %s (built %s)\n", Version, BuildTime)
	return err
}
