package main

import (
	"log/slog"
	"strings"

	"github.com/johanneslochmann/qtorm/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the CREATE TABLE statements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			models, d, err := a.models()
			if err != nil {
				return err
			}

			stmts := make([]string, 0, len(models))
			for _, m := range models {
				stmt, err := m.CreateTableSQL(d)
				if err != nil {
					return err
				}
				stmts = append(stmts, stmt)
			}
			out := strings.Join(stmts, "\n\n") + "\n"

			if a.cfg.Out == "" {
				_, err = cmd.OutOrStdout().Write([]byte(out))
				return err
			}
			a.logger.Info("writing schema", slog.String("file", a.cfg.Out), slog.Int("tables", len(models)))
			return afero.WriteFile(config.AppFs, a.cfg.Out, []byte(out), 0o644)
		},
	}
}
