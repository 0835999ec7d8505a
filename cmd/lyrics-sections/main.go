package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"lyrics-sections/internal/app"
	"lyrics-sections/internal/config"
	"lyrics-sections/internal/server"
	"lyrics-sections/pkg/sections"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	configPath string
	debug      bool
	jsonOutput bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lyrics-sections",
		Short: "Split song lyrics into labelled sections",
		Long: `lyrics-sections fetches song lyrics and splits them into named sections
such as Verse 1, Chorus and Bridge.

Section labels are translated to English when a translator is configured,
mapped onto a standard vocabulary, and repeated choruses that only carry a
header get the lyrics of their first occurrence.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.SetupLogging(debug)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config.toml")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")

	rootCmd.AddCommand(splitCmd())
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(metadataCmd())
	rootCmd.AddCommand(serveCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(ctx context.Context) (*app.App, *config.Config, error) {
	cfg := config.Load(configPath)
	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return a, cfg, nil
}

func splitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <title> <artist>",
		Short: "Fetch a song's lyrics and split them into sections",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")

			a, _, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.Split(cmd.Context(), args[0], args[1], verbose)
			return printResult(cmd.OutOrStdout(), result, err)
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Log every section as it is recorded")
	return cmd
}

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Split lyrics read from a file or stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			artist, _ := cmd.Flags().GetString("artist")
			verbose, _ := cmd.Flags().GetBool("verbose")

			text, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			a, _, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.Parse(cmd.Context(), text, artist, verbose)
			return printResult(cmd.OutOrStdout(), result, err)
		},
	}
	cmd.Flags().StringP("file", "f", "-", "Lyrics file, - for stdin")
	cmd.Flags().StringP("artist", "a", "", "Singer credited when a header names none")
	cmd.Flags().BoolP("verbose", "v", false, "Log every section as it is recorded")
	_ = cmd.MarkFlagRequired("artist")
	return cmd
}

func metadataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metadata <genius-id>",
		Short: "Show Genius metadata for a song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			meta, err := a.Metadata(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, meta)
			}
			fmt.Fprintf(out, "Title:    %s\n", meta.Title)
			fmt.Fprintf(out, "Artist:   %s\n", meta.Artist)
			fmt.Fprintf(out, "Language: %s\n", meta.Language)
			fmt.Fprintf(out, "Writers:  %s\n", strings.Join(meta.WriterArtists, ", "))
			fmt.Fprintf(out, "Genius:   %s\n", meta.GeniusID)
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the section splitter over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cfg, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = cfg.Server.Addr
			}
			return server.Run(cmd.Context(), addr, a)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default from config)")
	return cmd
}

func readInput(stdin io.Reader, file string) (string, error) {
	if file == "" || file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}
	return string(data), nil
}

func printResult(out io.Writer, result *sections.Result, err error) error {
	if errors.Is(err, sections.ErrNoSectionStructure) {
		if jsonOutput {
			return writeJSON(out, map[string]any{"available": false})
		}
		fmt.Fprintln(out, "The provided lyrics do not contain information about sections.")
		return nil
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(out, result)
	}

	for _, section := range result.Sections {
		fmt.Fprintf(out, "[%s] (%s)\n%s\n\n", section.Key, strings.Join(section.Singers, ", "), section.Content)
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintf(out, "warning: %s\n", d.Message)
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
