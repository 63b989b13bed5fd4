package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/ysh86/GTPtools/galaksija"
	"github.com/ysh86/GTPtools/gtp"
	"github.com/ysh86/GTPtools/internal/app"
	"github.com/ysh86/GTPtools/internal/cliconfig"
	"github.com/ysh86/GTPtools/internal/watch"
)

var exampleUsage = strings.TrimSpace(`
  wav2gtp game.wav
  wav2gtp --variant threshold --channel 2 --edge-level 0.05 game.wav game.gtp
  wav2gtp batch --workers 4 tapes/*.wav
  wav2gtp watch ~/captures
  wav2gtp info game.gtp
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger(cfg.LogLevel)

	// defaults, then config file, then GTP_* env, then flags
	loadConfig := func(cmd *cobra.Command, args []string) error {
		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}

		changed := map[string]bool{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
				return err
			}
		}
		if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log = cliconfig.Logger(cfg.LogLevel)
		log.Debug().Interface("config", cfg).Msg("configuration")
		return nil
	}

	options := func() app.Options {
		return app.Options{Decoder: cfg.DecoderConfig(), Strict: cfg.Strict, Overwrite: cfg.Overwrite}
	}

	root := &cobra.Command{
		Use:               "wav2gtp [flags] <input.wav|-> [output.gtp]",
		Short:             "Convert Galaksija cassette recordings to GTP tape images",
		Example:           exampleUsage,
		Version:           fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:              cobra.RangeArgs(1, 2),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			out := app.OutputPath(in)
			if len(args) == 2 {
				out = args[1]
			}
			log.Info().Msg("converting Galaksija WAV tape to GTP format")
			_, err := app.ConvertFile(in, out, options(), log)
			return err
		},
	}

	batch := &cobra.Command{
		Use:   "batch [flags] <input.wav>...",
		Short: "Convert many recordings in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			results := app.RunBatch(ctx, args, cfg.Workers, options(), log)
			failed := app.Failed(results)
			log.Info().Int("files", len(results)).Int("failed", failed).Msg("batch done")
			if failed > 0 {
				return fmt.Errorf("%d of %d conversions failed", failed, len(results))
			}
			return nil
		},
	}
	batch.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel conversions")

	watchCmd := &cobra.Command{
		Use:   "watch [flags] <dir>",
		Short: "Convert recordings as they are written to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			opts := options()
			w := &watch.Watcher{
				Dir:      args[0],
				Debounce: cfg.Debounce,
				Log:      log,
				Convert: func(path string) {
					if _, err := app.ConvertFile(path, app.OutputPath(path), opts, log); err != nil {
						log.Error().Err(err).Msg("conversion failed")
					}
				},
			}
			err := w.Run(ctx)
			log.Info().Msg("stopped watching")
			return err
		},
	}
	watchCmd.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "quiet time before a written file is converted")

	info := &cobra.Command{
		Use:   "info <file.gtp>",
		Short: "Print the blocks of a GTP file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return printInfo(cmd.OutOrStdout(), f)
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.gtptools/config.toml)")
	root.PersistentFlags().StringVar(&cfg.Variant, "variant", cfg.Variant, "decode variant: ternary or threshold")
	root.PersistentFlags().Float64Var(&cfg.EdgeLevel, "edge-level", cfg.EdgeLevel, "edge level (threshold variant)")
	root.PersistentFlags().IntVar(&cfg.Channel, "channel", cfg.Channel, "channel to decode, 1-based (threshold variant)")
	root.PersistentFlags().BoolVar(&cfg.Strict, "strict", cfg.Strict, "reject blocks with a wrong checksum")
	root.PersistentFlags().BoolVar(&cfg.Overwrite, "overwrite", cfg.Overwrite, "replace existing output files")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")

	root.AddCommand(batch, watchCmd, info)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("wav2gtp")
		os.Exit(1)
	}
}

func printInfo(w io.Writer, r io.Reader) error {
	for n := 0; ; n++ {
		h, payload, err := gtp.Read(r)
		if errors.Is(err, io.EOF) {
			if n == 0 {
				return fmt.Errorf("no blocks")
			}
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "block %d: type %02x, size %04x\n", n, h.Type, h.Size)

		blk, err := galaksija.Validate(payload)
		if err != nil {
			fmt.Fprintf(w, "  %v\n", err)
			continue
		}
		checksum := "OK"
		if !blk.ChecksumOK {
			checksum = "WRONG"
		}
		fmt.Fprintf(w, "  start: %04x\n", blk.StartAddress)
		fmt.Fprintf(w, "  end:   %04x\n", blk.EndAddress)
		fmt.Fprintf(w, "  checksum: %s\n", checksum)
		if !blk.BasicMarker {
			fmt.Fprintf(w, "  BASIC START not found\n")
		}
	}
}
