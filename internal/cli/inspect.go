package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/dossier/layout"
)

func newStatsCmd(g *globalOpts) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats <id>",
		Short: "输出档案的排版统计",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := loadEnv(ctx, g)
			if err != nil {
				return err
			}
			defer e.close()

			stats, err := e.generator(nil).Statistics(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(stats)
			}
			fmt.Fprintf(out, "%s %s\n", stats.ID, stats.Name)
			fmt.Fprintln(out, stats.Report)
			fmt.Fprintf(out, "行宽利用率: 平均 %.1f%%, 最低 %.1f%%, 最高 %.1f%% (%d 行, %d 字段)\n",
				stats.Pack.AverageUsage, stats.Pack.MinUsage, stats.Pack.MaxUsage,
				stats.Pack.TotalRows, stats.Pack.TotalFields)
			if stats.Report.TightBreaks > 0 {
				fmt.Fprintf(out, "页底空间不足的分页: %d\n", stats.Report.TightBreaks)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "以 JSON 输出")
	return cmd
}

func newLayoutCmd(g *globalOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "layout <id>",
		Short: "输出分页后的布局调试 JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := loadEnv(ctx, g)
			if err != nil {
				return err
			}
			defer e.close()

			plan, err := e.generator(nil).Plan(ctx, args[0])
			if err != nil {
				return err
			}
			snap := layout.Snapshot{Model: plan.Model, Report: plan.Report}
			if output == "" {
				return layout.EncodeDebugJSON(cmd.OutOrStdout(), snap)
			}
			if err := layout.WriteDebugJSON(snap, output); err != nil {
				return fmt.Errorf("写入调试 JSON 失败: %w", err)
			}
			e.logger.Info("已写入布局调试信息", "path", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "输出文件，默认写到标准输出")
	return cmd
}
