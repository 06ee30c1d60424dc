package cli

import (
	"fmt"
	"prioq/pkg/codec"
	"prioq/pkg/util/log"

	"github.com/spf13/cobra"
)

type convertOptions struct {
	*options
	kind string
	from string
	to   string
}

func newConvertCmd(opts *options) *cobra.Command {
	o := &convertOptions{options: opts}
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Re-encode an exported collection",
		Long: `Load an exported collection and save it in another format. The input is
validated as the chosen kind, so converting with --kind list requires every
record to carry a name.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(args[0], args[1])
		},
	}
	cmd.Flags().StringVarP(&o.kind, "kind", "k", KindQueue, "collection kind (queue, fast, list)")
	cmd.Flags().StringVar(&o.from, "from", "", "input format; inferred from the extension by default")
	cmd.Flags().StringVar(&o.to, "to", "", "output format; inferred from the extension by default")
	return cmd
}

func (o *convertOptions) run(in, out string) error {
	from, err := resolveFormat(in, o.from, o.props)
	if err != nil {
		return err
	}
	to, err := resolveFormat(out, o.to, o.props)
	if err != nil {
		return err
	}
	s, err := newStore(o.kind)
	if err != nil {
		return err
	}
	if err = codec.LoadFormat(in, s, from); err != nil {
		return fmt.Errorf("failed to load %s: %w", in, err)
	}
	if err = codec.Save(out, s, to); err != nil {
		return fmt.Errorf("failed to save %s: %w", out, err)
	}
	log.Info("converted %d entries from %s (%s) to %s (%s)", s.Count(), in, from, out, to)
	return nil
}
