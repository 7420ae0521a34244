package main

import (
	"io"
	"log/slog"

	"github.com/johanneslochmann/qtorm/internal/config"
	"github.com/johanneslochmann/qtorm/orm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app 是所有子命令共享的状态
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "qtorm",
		Short: "Render and apply CREATE TABLE statements of qtorm models",
		Long: `qtorm reads table declarations from .qtorm.yaml and renders the
CREATE TABLE statements of the matching models for the configured driver.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.DefaultFile+")")
	flags.String("driver", "", "database/sql driver: sqlite3, sqlite, mysql or postgres")
	flags.String("dsn", "", "data source name, DATABASE_URL is used when empty")
	flags.String("out", "", "write the statements to this file instead of stdout")
	flags.BoolP("verbose", "v", false, "log every statement")
	for _, name := range []string{"driver", "dsn", "out", "verbose"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(newSchemaCmd(a), newApplyCmd(a))
	return rootCmd
}

func (a *app) load(logOut io.Writer) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	return nil
}

// models 构造所有配置的表以及对应的方言
func (a *app) models() ([]*orm.Model, orm.Dialect, error) {
	d, err := orm.DialectFor(a.cfg.Driver)
	if err != nil {
		return nil, nil, err
	}
	models, err := a.cfg.Models()
	if err != nil {
		return nil, nil, err
	}
	return models, d, nil
}
