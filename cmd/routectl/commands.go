package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/stock-navigator/pkg/navigation"
)

func newRoutesCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.table()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(table.Routes())
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "NAME\tPATH\tVIEW\tHREF\n")
			for _, r := range table.Routes() {
				m, err := table.Match(r.Path)
				view := ""
				if err == nil {
					view = m.Route.View
				}
				href, err := table.Href(r.Name, nil)
				if err != nil {
					href = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.Path, view, href)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print routes as JSON")
	return cmd
}

func newResolveCmd(opts *options) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Resolve a path to its route",
		Long: `Resolve prints the name and view of the route a path maps to. With --full
the path is treated as a browser URL path and the base path is removed first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.table()
			if err != nil {
				return err
			}

			path := args[0]
			if full {
				located, ok := table.Locate(path)
				if !ok {
					return fmt.Errorf("%s is outside base path %s", path, table.Base())
				}
				path = located
			}

			m, err := table.Match(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "name: %s\npath: %s\nview: %s\n", m.Route.Name, m.Route.Path, m.Route.View)

			keys := make([]string, 0, len(m.Params))
			for k := range m.Params {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "param %s: %s\n", k, m.Params[k])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "path includes the base path")
	return cmd
}

func newHrefCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "href <name> [key=value...]",
		Short: "Build the URL for a named route",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.table()
			if err != nil {
				return err
			}

			params := make(map[string]string, len(args)-1)
			for _, arg := range args[1:] {
				k, v, ok := strings.Cut(arg, "=")
				if !ok || k == "" {
					return fmt.Errorf("invalid parameter %q: want key=value", arg)
				}
				params[k] = v
			}

			href, err := table.Href(args[0], params)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), href)
			return nil
		},
	}
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [routes-file]",
		Short: "Validate a route table",
		Long: `Validate builds the route table and reports the first problem found:
duplicate names, duplicate paths, or malformed definitions. A routes file
argument takes precedence over --routes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.routesFile = args[0]
			}

			table, err := opts.table()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d routes, base %s, history %s\n", table.Len(), table.Base(), table.Mode())
			return nil
		},
	}
}

func newNavigateCmd(opts *options) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "navigate <step>...",
		Short: "Replay a navigation session against the route table",
		Long: `Navigate drives an in-memory history through a sequence of steps and prints
the current route after each one. A step is one of:

  /path               push a route-relative path
  @Name               push a named route
  @Name:key=value,..  push a named route with parameters
  replace <step>      replace the current entry instead of pushing
  back, forward       move through the history

An unknown path or name stops the session and leaves the history as it was.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.table()
			if err != nil {
				return err
			}

			history := navigation.NewMemoryHistory(start)
			nav := navigation.NewNavigator(table, history)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "STEP\tNAME\tPATH\tHREF\n")
			if err := printCurrent(w, "start", table, nav, history); err != nil {
				return err
			}

			for i := 0; i < len(args); i++ {
				step := args[i]
				switch step {
				case "back":
					if !history.Back() {
						return fmt.Errorf("back: already at the first entry")
					}
				case "forward":
					if !history.Forward() {
						return fmt.Errorf("forward: already at the last entry")
					}
				case "replace":
					if i+1 >= len(args) {
						return fmt.Errorf("replace: missing target")
					}
					i++
					step = "replace " + args[i]
					if err := navigate(nav, args[i], true); err != nil {
						return err
					}
				default:
					if err := navigate(nav, step, false); err != nil {
						return err
					}
				}

				if err := printCurrent(w, step, table, nav, history); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "/", "route-relative path the history starts at")
	return cmd
}

// navigate pushes or replaces a single path or @Name target.
func navigate(nav *navigation.Navigator[string], target string, replace bool) error {
	name, ok := strings.CutPrefix(target, "@")
	if !ok {
		if replace {
			_, err := nav.Replace(target)
			return err
		}
		_, err := nav.Push(target)
		return err
	}

	name, rawParams, _ := strings.Cut(name, ":")
	params := make(map[string]string)
	for _, pair := range strings.Split(rawParams, ",") {
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return fmt.Errorf("invalid parameter %q: want key=value", pair)
		}
		params[k] = v
	}

	if replace {
		_, err := nav.ReplaceNamed(name, params)
		return err
	}
	_, err := nav.PushNamed(name, params)
	return err
}

func printCurrent(w io.Writer, step string, table *navigation.Table[string], nav *navigation.Navigator[string], history navigation.History) error {
	m, err := nav.Current()
	if err != nil {
		return err
	}
	href, err := table.Href(m.Route.Name, m.Params)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", step, m.Route.Name, history.Location(), href)
	return nil
}
