package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion 设置 --version 输出的版本信息，通常由 main 通过 ldflags 注入。
func SetVersion(v, c, d string) {
	if v != "" {
		version = v
	}
	commit = c
	date = d
}

// globalOpts 是所有子命令共享的参数。
type globalOpts struct {
	configPath string
	verbose    bool
}

// Execute 运行命令行，ctx 取消时长时间运行的子命令（serve、批量 render）会退出。
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	g := &globalOpts{}

	root := &cobra.Command{
		Use:          "dossier",
		Short:        "dossier 生成员工档案 PDF",
		Long:         `dossier 按字段描述集对员工档案做紧凑排版与分页，输出 PDF，并提供 HTTP 服务与排版诊断。`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if g.verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("dossier %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "YAML 配置文件路径")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "输出调试日志")

	root.AddCommand(newRenderCmd(g))
	root.AddCommand(newStatsCmd(g))
	root.AddCommand(newLayoutCmd(g))
	root.AddCommand(newServeCmd(g))
	root.AddCommand(newImportCmd(g))
	root.AddCommand(newFieldsCmd(g))
	return root
}
