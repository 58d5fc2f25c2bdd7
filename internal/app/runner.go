package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/quantmind-br/ucmpurge/internal/config"
	"github.com/quantmind-br/ucmpurge/internal/credentials"
	"github.com/quantmind-br/ucmpurge/internal/domain"
	"github.com/quantmind-br/ucmpurge/internal/manifest"
	"github.com/quantmind-br/ucmpurge/internal/output"
	"github.com/quantmind-br/ucmpurge/internal/purge"
	"github.com/quantmind-br/ucmpurge/internal/ucm"
	"github.com/quantmind-br/ucmpurge/internal/utils"
)

// Runner coordinates one purge run
type Runner struct {
	config      *config.Config
	connector   domain.Connector
	ownsClient  *ucm.Client
	logger      *utils.Logger
	progressOut io.Writer
}

// RunnerOptions contains options for creating a runner
type RunnerOptions struct {
	Config *config.Config
	Logger *utils.Logger
	// Connector overrides the content server client built from Config
	Connector domain.Connector
	// ProgressOutput receives the progress bar, stderr when nil
	ProgressOutput io.Writer
	Verbose        bool
}

// NewRunner creates a new runner with the given configuration
func NewRunner(opts RunnerOptions) (*Runner, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logLevel := cfg.Logging.Level
		if logLevel == "" {
			logLevel = config.DefaultLogLevel
		}
		if opts.Verbose {
			logLevel = "debug"
		}
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   logLevel,
			Format:  cfg.Logging.Format,
			Verbose: opts.Verbose,
		})
	}

	r := &Runner{
		config:      cfg,
		connector:   opts.Connector,
		logger:      logger,
		progressOut: opts.ProgressOutput,
	}
	if r.progressOut == nil {
		r.progressOut = os.Stderr
	}

	if r.connector == nil {
		client, err := ucm.NewClient(ClientOptionsFromConfig(cfg, logger))
		if err != nil {
			return nil, fmt.Errorf("failed to create ucm client: %w", err)
		}
		r.connector = client
		r.ownsClient = client
	}

	return r, nil
}

// ClientOptionsFromConfig maps configuration onto content server client options
func ClientOptionsFromConfig(cfg *config.Config, logger *utils.Logger) ucm.ClientOptions {
	return ucm.ClientOptions{
		Timeout:            cfg.UCM.Timeout,
		ConnectRetries:     cfg.UCM.ConnectRetries,
		UserAgent:          cfg.UCM.UserAgent,
		ProxyURL:           cfg.UCM.Proxy,
		InsecureSkipVerify: cfg.UCM.InsecureSkipVerify,
		Logger:             logger,
	}
}

// Close releases the client created by NewRunner
func (r *Runner) Close() error {
	if r.ownsClient != nil {
		return r.ownsClient.Close()
	}
	return nil
}

// Run validates args, plans the deletion batch and deletes it. It returns nil
// only when every request was accepted, or when a dry run planned successfully.
func (r *Runner) Run(ctx context.Context, args []string) error {
	if err := ValidateArgs(args); err != nil {
		return err
	}

	connPath, manifestPath, manifestDocID := args[0], args[1], args[2]
	startTime := time.Now()

	var writer *output.Writer
	if r.config.Output.Report != "" {
		w, err := output.NewWriter(r.config.Output.Report)
		if err != nil {
			return domain.NewUsageError("Error: report %v", err)
		}
		writer = w
	}

	if err := utils.CheckFile(connPath); err != nil {
		r.logger.Error().Err(err).Msg("Connection properties file check failed")
		return err
	}
	if err := utils.CheckFile(manifestPath); err != nil {
		r.logger.Error().Err(err).Msg("Manifest file check failed")
		return err
	}

	r.logger.Info().Str("manifest", manifestPath).
		Msgf("Deleting files as contained in file >%s<", manifestPath)

	info, err := credentials.Load(connPath)
	if err != nil {
		return err
	}
	r.logger.Info().Str("url", info.URL).Str("username", info.Username).
		Msgf("UCM URL is >%s< and user name is >%s<", info.URL, info.Username)

	lines, err := manifest.NewLoader().Load(manifestPath)
	if err != nil {
		return err
	}
	r.logger.Info().Int("lines", len(lines)).
		Msgf("File >%s< contains >%d< files to delete in UCM", manifestPath, len(lines))

	batch, err := manifest.BuildBatch(lines, manifestDocID)
	if err != nil {
		r.logger.Error().Err(err).Msg("Manifest could not be interpreted")
		return err
	}

	collector := output.NewCollector(output.CollectorOptions{
		ServiceURL:    info.URL,
		Username:      info.Username,
		ManifestFile:  manifestPath,
		ManifestDocID: manifestDocID,
		ManifestLines: len(lines),
		DryRun:        r.config.Output.DryRun,
	})
	collector.Plan(batch)

	if r.config.Output.DryRun {
		for _, entry := range batch.Entries {
			r.logger.Info().Str("doc_id", entry.DocID).
				Msgf("Would delete file >%s< with DocID >%s<", entry.FileName, entry.DocID)
		}
		collector.Conclude(output.OutcomePlanned, nil)
		r.logger.Info().Int("requests", batch.Len()).Msg("Dry run, no requests sent")
		return r.writeReport(writer, collector, nil)
	}

	r.logger.Info().Str("url", info.URL).Msgf("Connect to %s", info.URL)
	session, err := r.connector.Connect(ctx, info)
	if err != nil {
		var connErr *domain.ConnectionError
		if !errors.As(err, &connErr) {
			err = domain.NewConnectionError(info.URL, err)
		}
		r.logger.Error().Err(err).Msg("Could not create an UCM connection")
		collector.Finish(domain.ConnectionFailure(err))
		return r.writeReport(writer, collector, err)
	}
	defer session.Close()

	seqOpts := purge.Options{
		Logger: r.logger,
		OnAttempt: func(a purge.Attempt) {
			collector.Record(a.Entry, a.Status, a.Err)
		},
	}
	if r.config.Output.Progress {
		seqOpts.Progress = utils.NewProgressBar(batch.Len(), utils.DescDeleting, r.progressOut)
	}

	result := purge.NewSequencer(session, seqOpts).Run(ctx, batch)
	collector.Finish(result)

	duration := time.Since(startTime)
	if !result.OK() {
		r.logger.Error().
			Str("outcome", result.Kind.String()).
			Int("completed", result.Completed()).
			Dur("duration", duration).
			Msg("UCM file deletion aborted")
		return r.writeReport(writer, collector, result.Err)
	}

	r.logger.Info().
		Int("deleted", result.Completed()).
		Dur("duration", duration).
		Msg("UCM file deletion successfully finished")
	return r.writeReport(writer, collector, nil)
}

// writeReport writes the report when one was requested. A write failure is
// returned only when the run itself succeeded.
func (r *Runner) writeReport(w *output.Writer, c *output.Collector, runErr error) error {
	if w == nil {
		return runErr
	}

	if err := w.Write(c.Report()); err != nil {
		r.logger.Error().Err(err).Str("path", w.Path()).Msg("Failed to write run report")
		if runErr != nil {
			return runErr
		}
		return fmt.Errorf("failed to write run report: %w", err)
	}

	r.logger.Debug().Str("path", w.Path()).Msg("Run report written")
	return runErr
}
