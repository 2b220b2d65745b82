package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newFieldsCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "列出字段描述集",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer e.close()

			reg := e.engine.Registry()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, id := range reg.Sections() {
				fmt.Fprintf(tw, "[%s] %s\n", id, reg.Title(id))
				for _, d := range reg.Group(id) {
					var flags []string
					if d.Required {
						flags = append(flags, "required")
					}
					if d.FullWidth {
						flags = append(flags, "full-width")
					}
					if d.MaxLength > 0 {
						flags = append(flags, fmt.Sprintf("max-length=%d", d.MaxLength))
					}
					fmt.Fprintf(tw, "  %s\t%s\t%g%%\t%s\t%s\n",
						d.Key, d.Label, d.Width, d.Kind, strings.Join(flags, ","))
				}
			}
			return tw.Flush()
		},
	}
}
