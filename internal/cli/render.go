package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

type renderOpts struct {
	outDir string
	all    bool
}

func newRenderCmd(g *globalOpts) *cobra.Command {
	opts := renderOpts{outDir: "output"}

	cmd := &cobra.Command{
		Use:   "render [id...]",
		Short: "生成员工档案 PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := loadEnv(ctx, g)
			if err != nil {
				return err
			}
			defer e.close()

			ids, err := e.ids(ctx, args, opts.all)
			if err != nil {
				return err
			}
			r, err := e.newRenderer()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
				return fmt.Errorf("创建输出目录失败: %w", err)
			}

			p := newProgress(e.logger)
			gen := e.generator(r)
			for _, id := range ids {
				if err := ctx.Err(); err != nil {
					return err
				}
				data, err := gen.Generate(ctx, id)
				if err != nil {
					return err
				}
				path := filepath.Join(opts.outDir, archiveFileName(id))
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("写入 %s 失败: %w", path, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			p.done(fmt.Sprintf("已生成 %d 份档案", len(ids)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "output", "o", opts.outDir, "PDF 输出目录")
	cmd.Flags().BoolVar(&opts.all, "all", false, "生成数据源中的全部档案")
	return cmd
}

// archiveFileName 返回档案 PDF 文件名，例如 archive_001.pdf。
func archiveFileName(id string) string {
	return "archive_" + filepath.Base(id) + ".pdf"
}
