package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/johanneslochmann/qtorm/internal/tracing"
	"github.com/johanneslochmann/qtorm/orm"
	"github.com/johanneslochmann/qtorm/orm/middlewares/errhdl"
	"github.com/johanneslochmann/qtorm/orm/middlewares/opentelemetry"
	"github.com/johanneslochmann/qtorm/orm/middlewares/querylog"
	rec "github.com/johanneslochmann/qtorm/orm/middlewares/recover"
	"github.com/spf13/cobra"
)

func newApplyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Create the configured tables in one transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.apply(cmd.Context(), cmd)
		},
	}
}

func (a *app) apply(ctx context.Context, cmd *cobra.Command) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a.cfg.DSN == "" {
		return errors.New("qtorm: no dsn configured")
	}
	models, _, err := a.models()
	if err != nil {
		return err
	}

	tp, err := tracing.NewProvider(a.cfg.Trace)
	if err != nil {
		return err
	}
	defer func() {
		if e := tp.Shutdown(context.Background()); e != nil {
			a.logger.Warn("tracing shutdown", slog.Any("err", e))
		}
	}()

	logger := a.logger
	mdls := []orm.Middleware{
		(&rec.MiddlewareBuilder{}).Build(),
		querylog.NewBuilder().LogFunc(func(query string, args []any) {
			logger.Debug("sql", slog.String("query", query), slog.Any("args", args))
		}).Build(),
		opentelemetry.MiddlewareBuilder{Tracer: tp.Tracer("qtorm")}.Build(),
		errhdl.NewMiddlewareBuilder().Build(),
	}

	db, err := orm.Open(a.cfg.Driver, a.cfg.DSN,
		orm.DBWithLogger(logger),
		orm.DBWithMiddlewares(mdls...))
	if err != nil {
		return err
	}
	defer func() {
		if e := db.Close(); e != nil && err == nil {
			err = e
		}
	}()

	err = db.DoTx(ctx, func(ctx context.Context, tx *orm.Tx) error {
		for _, m := range models {
			if err := m.CreateTable(ctx, tx); err != nil {
				return fmt.Errorf("qtorm: create table %s: %w", m.TableName(), err)
			}
			logger.Info("created table", slog.String("table", m.TableName()))
		}
		return nil
	}, nil)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "created %d tables\n", len(models))
	return err
}
