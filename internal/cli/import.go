package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/dossier/record"
	"github.com/ByLCY/dossier/record/sqlite"
)

type importOpts struct {
	from    string
	db      string
	samples bool
}

func newImportCmd(g *globalOpts) *cobra.Command {
	var opts importOpts

	cmd := &cobra.Command{
		Use:   "import",
		Short: "把 YAML/JSON 档案或演示数据导入 SQLite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := loadEnv(ctx, g)
			if err != nil {
				return err
			}
			defer e.close()

			dsn := opts.db
			if dsn == "" {
				dsn = e.cfg.Records.SQLite
			}
			if dsn == "" {
				return errors.New("需要 --db 或配置 records.sqlite")
			}

			var emps []*record.Employee
			switch {
			case opts.samples:
				emps = record.SampleEmployees()
			case opts.from != "":
				src, err := record.NewDirSource(opts.from)
				if err != nil {
					return err
				}
				ids, err := src.IDs(ctx)
				if err != nil {
					return err
				}
				for _, id := range ids {
					emp, err := src.Get(ctx, id)
					if err != nil {
						return err
					}
					emps = append(emps, emp)
				}
			default:
				return errors.New("需要 --from 或 --samples")
			}

			p := newProgress(e.logger)
			store, err := sqlite.Open(ctx, dsn)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.PutAll(ctx, emps); err != nil {
				return err
			}
			p.done(fmt.Sprintf("已导入 %d 份档案到 %s", len(emps), dsn))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "档案目录（.yaml/.yml/.json）")
	cmd.Flags().StringVar(&opts.db, "db", "", "SQLite 数据库路径，默认使用 records.sqlite")
	cmd.Flags().BoolVar(&opts.samples, "samples", false, "导入内置演示档案")
	return cmd
}
