package main

import (
	"io"
	"os"

	"order-matching-engine/internal/audit"
	"order-matching-engine/internal/config"
	"order-matching-engine/internal/stream"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process a price-level update stream into top-N snapshots",
		RunE:  runRun,
	}
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	in, err := openInput(cfg.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	var sink *audit.Sink
	if dsn := cfg.AuditDSN(); dsn != "" {
		db, err := audit.Connect(dsn)
		if err != nil {
			logger.Warn().Err(err).Msg("audit sink unavailable, continuing without it")
		} else if db != nil {
			sink, err = audit.NewSink(db)
			if err != nil {
				logger.Warn().Err(err).Msg("audit sink unavailable, continuing without it")
			} else {
				defer sink.Close()
				logger.Info().Str("run_id", sink.RunID().String()).Msg("audit sink enabled")
			}
		}
	}

	proc, err := stream.New(stream.Options{
		Capacity:          cfg.Capacity,
		Dialect:           cfg.ResolveDialect(),
		WarnOnCrossedBook: cfg.WarnCrossed,
	}, logger, sink)
	if err != nil {
		return err
	}

	logger.Info().Int("capacity", cfg.Capacity).Str("dialect", cfg.Dialect).Msg("stream starting")
	if err := proc.Run(in, out); err != nil {
		return err
	}
	logger.Info().Msg("stream finished")
	return nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
