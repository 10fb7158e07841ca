package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brenkeeper/brenkeeper/internal/domain/statement/categorizer"
	"github.com/brenkeeper/brenkeeper/internal/domain/statement/docparser"
	"github.com/brenkeeper/brenkeeper/internal/domain/statement/normalizer"
	"github.com/brenkeeper/brenkeeper/internal/domain/statement/service"
	"github.com/brenkeeper/brenkeeper/pkg/config"
	"github.com/brenkeeper/brenkeeper/pkg/money"
)

var (
	outputFormat string
	outputPath   string
	mimetypeFlag string
	bankFlag     string
)

var convertCmd = &cobra.Command{
	Use:   "convert <statement-file>",
	Short: "Convert a bank statement to canonical CSV or JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&outputFormat, "format", "csv", "output format: csv or json")
	convertCmd.Flags().StringVar(&outputPath, "output", "", "output file (default: stdout)")
	convertCmd.Flags().StringVar(&mimetypeFlag, "mimetype", "", "override the detected content type")
	convertCmd.Flags().StringVar(&bankFlag, "bank", "", "bank template hint for the document parser")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if outputFormat != "csv" && outputFormat != "json" {
		return fmt.Errorf("unsupported output format %q (want csv or json)", outputFormat)
	}

	payload, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	bank := cfg.Parser.Bank
	if bankFlag != "" {
		bank = bankFlag
	}

	providers := []docparser.Provider{
		docparser.NewHTTPProvider(cfg.Parser.APIURL, cfg.Parser.APIKey, bank, cfg.Parser.Timeout()),
	}
	if cfg.Parser.LocalCommand != "" {
		providers = append(providers, docparser.NewLocalProvider(cfg.Parser.LocalCommand, nil, cfg.Parser.Timeout()))
	}

	svc := service.New(normalizer.New(categorizer.New()), logger).
		WithDocumentParser(docparser.NewChain(logger, providers...))

	mimetype := mimetypeFlag
	if mimetype == "" {
		mimetype = mime.TypeByExtension(filepath.Ext(inputPath))
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	result, err := svc.Process(ctx, payload, mimetype, filepath.Base(inputPath))
	if err != nil {
		return err
	}

	var out []byte
	switch outputFormat {
	case "json":
		out, err = json.MarshalIndent(result.Transactions, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		out = append(out, '\n')
	default:
		out = []byte(result.CSVContent)
	}

	if outputPath == "" {
		if _, err := os.Stdout.Write(out); err != nil {
			return err
		}
	} else if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d transactions | inflows %s | outflows %s | net %s\n",
		len(result.Transactions),
		money.Display(result.Cashflow.TotalInflows, "USD"),
		money.Display(result.Cashflow.TotalOutflows, "USD"),
		money.Display(result.Cashflow.NetCashflow, "USD"))

	return nil
}
