package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dzqdzq/bucketup/internal/app"
	"github.com/dzqdzq/bucketup/internal/config"
	"github.com/dzqdzq/bucketup/internal/keys"
	"github.com/dzqdzq/bucketup/internal/logger"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "bucketup <source> [destination]",
	Short: "Upload a file or directory tree to an object-storage bucket",
	Long: `bucketup uploads a local file or directory tree to an S3-compatible
bucket, mapping local paths to remote keys, setting per-file metadata, and
running uploads across a bounded worker pool.`,
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runUpload,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ./config.yaml)")

	// Destination bucket
	rootCmd.Flags().String("endpoint", "", "storage endpoint")
	rootCmd.Flags().String("bucket", "", "bucket name")
	rootCmd.Flags().String("region", "", "bucket region")
	rootCmd.Flags().String("access-key", "", "access key")
	rootCmd.Flags().String("secret-key", "", "secret key")
	rootCmd.Flags().Bool("secure", true, "use HTTPS")

	// Upload behaviour
	rootCmd.Flags().Bool("include-root", false, "keep the source directory name as a key segment (cp src dst instead of cp src/* dst)")
	rootCmd.Flags().Int("workers", 10, "number of concurrent upload workers")
	rootCmd.Flags().Bool("skip-existing", false, "skip files that already exist remotely with the same size")
	rootCmd.Flags().Bool("dry-run", false, "list what would be uploaded without transferring")

	// Observability
	rootCmd.Flags().String("log-level", "info", "log level (debug/info/warn/error)")
	rootCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address during the run")
	rootCmd.Flags().String("journal", "", "record per-file outcomes in this SQLite file")
}

func runUpload(cmd *cobra.Command, args []string) error {
	source := args[0]
	dest := "/"
	if len(args) == 2 {
		dest = args[1]
	}

	cfg, err := config.Load(resolveConfigFile(), cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	mode := keys.ContentsOnly
	if includeRoot, _ := cmd.Flags().GetBool("include-root"); includeRoot {
		mode = keys.WholeTree
	}

	uploader, err := app.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create uploader: %w", err)
	}
	defer uploader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("received shutdown signal, stopping")
		cancel()
	}()

	result, err := uploader.Run(ctx, source, dest, mode)
	if err != nil {
		return err
	}
	if !result.OK {
		return fmt.Errorf("upload failed: %d of %d files failed", result.Failed, result.Uploaded+result.Failed)
	}

	return nil
}

// resolveConfigFile falls back to ./config.yaml when present and no explicit
// --config was given. Credentials may also come from the environment, so a
// missing file is not an error.
func resolveConfigFile() string {
	if configFile != "" {
		return configFile
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
