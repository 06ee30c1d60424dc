package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"prioq/pkg/config"
	"prioq/pkg/datastruct/collection"
	"prioq/pkg/util/pattern"

	"github.com/spf13/cobra"
)

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config [pattern...]",
		Short: "Show the effective configuration and configured lists",
		Long: `Log the effective configuration and print every configured list in
iteration order. Arguments select lists by name or by glob pattern; a plain
name that is not configured is an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.props.DisplayConfigs()
			names, err := selectLists(opts.props, args)
			if err != nil {
				return err
			}
			for _, name := range names {
				if err = printList(cmd.OutOrStdout(), opts.props, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func selectLists(props *config.Properties, args []string) ([]string, error) {
	if len(args) == 0 {
		return props.ListNames(), nil
	}
	var names []string
	for _, arg := range args {
		p, err := pattern.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", collection.ErrInvalidArgument, err)
		}
		if p.IsLiteral() {
			names = append(names, arg)
			continue
		}
		names = append(names, p.Filter(props.ListNames())...)
	}
	return names, nil
}

func printList(out io.Writer, props *config.Properties, name string) error {
	pl, err := props.PriorityList(name)
	if err != nil {
		return err
	}
	entries, err := pl.ToArray(collection.ExtractBoth)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s:\n", name)
	for _, e := range entries {
		item := e.Value.(collection.Item[any])
		value, err := json.Marshal(item.Data)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %d\t%s\t%s\n", item.Priority, e.Name, value)
	}
	return nil
}
