/*
Package cli provides command-line interface utilities for Veritas.

The cli package includes output formatters, progress reporters, and common CLI
helpers used by the veritas command.

Output Formatting:

The cli package supports multiple output formats (text, JSON, CSV) for
displaying command results:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, report); err != nil {
		return err
	}

CSV output requires the result type to implement the Tabular interface.

Progress Reporting:

For batch analysis over many documents, use the progress reporter:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(int64(len(files)))
	for i, f := range files {
		// Analyze f
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SignalContext()
	defer stop()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
