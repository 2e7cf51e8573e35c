package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	takeoff "github.com/Clayne666/framing-takeoff-toolkit-sub000"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/export"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/model"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/pdfsource"
	"github.com/Clayne666/framing-takeoff-toolkit-sub000/store"
)

var scanCmd = &cobra.Command{
	Use:   "scan <plans.pdf>",
	Short: "Scan one plan set and write the takeoff",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringP("format", "f", "json", "output format: json, xlsx, or markdown")
	scanCmd.Flags().StringP("output", "o", "", "output file (default: stdout; required for xlsx)")
	scanCmd.Flags().Bool("no-store", false, "do not persist the result to the scan store")
}

func runScan(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	path := args[0]

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json", "xlsx", "markdown":
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	output, _ := cmd.Flags().GetString("output")
	if format == "xlsx" && output == "" {
		return fmt.Errorf("xlsx output requires --output")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := scanFile(ctx, path, log)
	if err != nil {
		return err
	}

	if noStore, _ := cmd.Flags().GetBool("no-store"); !noStore {
		if storePath := viper.GetString("store"); storePath != "" {
			if err := persist(ctx, storePath, result); err != nil {
				return err
			}
			log.Info("result stored", "store", storePath, "scan", result.ScanID)
		}
	}

	return writeResult(result, format, output)
}

// scanFile runs the pipeline over one PDF, folding source-level warnings
// into the result.
func scanFile(ctx context.Context, path string, log *slog.Logger) (*model.ExtractionResult, error) {
	src, err := pdfsource.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	scanner, err := newScanner(path, log)
	if err != nil {
		return nil, err
	}
	scanner = scanner.WithProgress(func(p takeoff.Progress) {
		log.Info("page scanned", "page", p.Page, "of", p.Total,
			"type", p.Classification.Type.String(),
			"confidence", fmt.Sprintf("%.2f", p.Classification.Confidence))
	})

	result, err := scanner.Scan(ctx, src)
	if result != nil {
		for _, w := range src.Warnings() {
			result.AddWarning(w)
		}
		if empty := src.EmptyPages(); len(empty) > 0 {
			result.AddWarning(model.Warnf("empty-text-layer", 0, model.SeverityReview,
				"pages %v have no text layer; consider an OCR build (-tags ocr)", empty))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}

	if len(result.Warnings) > 0 {
		log.Info("scan finished with warnings", "count", len(result.Warnings))
		fmt.Fprintln(os.Stderr, takeoff.FormatWarnings(result.Warnings))
	}
	return result, nil
}

func persist(ctx context.Context, path string, result *model.ExtractionResult) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Put(ctx, result)
}

func writeResult(result *model.ExtractionResult, format, output string) error {
	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(result, "", "  ")
		data = append(data, '\n')
	case "markdown":
		data = []byte(export.Markdown(result))
	case "xlsx":
		data, err = export.Workbook(result)
	}
	if err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(output, data, 0o644)
}
