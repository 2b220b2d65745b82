package cli

import (
	"github.com/spf13/cobra"

	"github.com/ByLCY/dossier/server"
)

func newServeCmd(g *globalOpts) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动档案 HTTP 服务",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := loadEnv(ctx, g)
			if err != nil {
				return err
			}
			defer e.close()

			r, err := e.newRenderer()
			if err != nil {
				return err
			}
			sc := e.cfg.Server
			if addr != "" {
				sc.Addr = addr
			}
			srv := server.New(e.generator(r), e.logger, server.Options{
				Addr:            sc.Addr,
				ReadTimeout:     sc.ReadTimeout,
				WriteTimeout:    sc.WriteTimeout,
				ShutdownTimeout: sc.ShutdownTimeout,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "监听地址，覆盖配置文件中的 server.addr")
	return cmd
}
