package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"prioq/pkg/codec"
	"prioq/pkg/datastruct/collection"
	"prioq/pkg/datastruct/fastpq"
	"prioq/pkg/datastruct/pqueue"
	"prioq/pkg/datastruct/prioritylist"
	"prioq/pkg/util/pattern"

	"github.com/spf13/cobra"
)

type drainOptions struct {
	*options
	kind   string
	mode   string
	format string
	match  string
	fifo   bool
}

func newDrainCmd(opts *options) *cobra.Command {
	o := &drainOptions{options: opts}
	cmd := &cobra.Command{
		Use:   "drain <file>",
		Short: "Print a collection in priority order",
		Long: `Load an exported collection and print one JSON value per line in the
order the collection yields them. Queues are drained by repeated extraction;
lists are printed as name and value separated by a tab.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.OutOrStdout(), args[0], cmd.Flags().Changed("fifo"))
		},
	}
	cmd.Flags().StringVarP(&o.kind, "kind", "k", KindQueue, "collection kind (queue, fast, list)")
	cmd.Flags().StringVarP(&o.mode, "mode", "m", "data", "what to print per entry (data, priority, both)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "input format (json, yaml, dump); inferred from the extension by default")
	cmd.Flags().BoolVar(&o.fifo, "fifo", false, "list only: oldest first among equal priorities")
	cmd.Flags().StringVar(&o.match, "match", "", "list only: print names matching this glob pattern")
	return cmd
}

func (o *drainOptions) run(out io.Writer, path string, fifoSet bool) error {
	mode, err := collection.ParseExtractMode(o.mode)
	if err != nil {
		return err
	}
	format, err := resolveFormat(path, o.format, o.props)
	if err != nil {
		return err
	}
	var match *pattern.Pattern
	if o.match != "" {
		if o.kind != KindList {
			return fmt.Errorf("%w: --match applies to lists only", collection.ErrInvalidArgument)
		}
		if match, err = pattern.Parse(o.match); err != nil {
			return fmt.Errorf("%w: %v", collection.ErrInvalidArgument, err)
		}
	}
	s, err := newStore(o.kind)
	if err != nil {
		return err
	}
	if err = codec.LoadFormat(path, s, format); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	switch c := s.(type) {
	case *pqueue.PriorityQueue[any]:
		for !c.IsEmpty() {
			item, err := c.ExtractItem()
			if err != nil {
				return err
			}
			if err = printValue(out, collection.Select(mode, item.Data, item.Priority)); err != nil {
				return err
			}
		}
	case *fastpq.FastPriorityQueue[any]:
		if err = c.SetExtractionMode(mode); err != nil {
			return err
		}
		for !c.IsEmpty() {
			v, err := c.Poll()
			if err != nil {
				return err
			}
			if err = printValue(out, v); err != nil {
				return err
			}
		}
	case *prioritylist.PriorityList[any]:
		lifo := o.props.LIFO
		if fifoSet {
			lifo = !o.fifo
		}
		c.SetLIFO(lifo)
		entries, err := c.ToArray(mode)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if match != nil && !match.Matches(e.Name) {
				continue
			}
			fmt.Fprintf(out, "%s\t", e.Name)
			if err = printValue(out, e.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func printValue(out io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
