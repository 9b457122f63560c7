package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"pdfqa/internal/adapter/store"
	"pdfqa/internal/domain"
)

var (
	ingestID      string
	ingestRebuild bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <path>",
	Short: "Extract, chunk and store PDF documents",
	Long: `Ingest a PDF file or every PDF under a directory. Each document becomes its
own corpus, named after the file without its extension. Ingesting a document
again replaces its corpus.

Examples:
  pdfqa ingest report.pdf              # Corpus "report"
  pdfqa ingest report.pdf --id q3      # Corpus "q3"
  pdfqa ingest ./papers                # One corpus per PDF`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVar(&ingestID, "id", "", "corpus identifier (single file only)")
	ingestCmd.Flags().BoolVar(&ingestRebuild, "rebuild", false, "clear stored corpora first (bolt backend)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if info.IsDir() && ingestID != "" {
		return fmt.Errorf("--id cannot be used with a directory")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if bolt, ok := st.(*store.BoltStore); ok {
		if err := checkBolt(bolt); err != nil {
			return err
		}
	}

	ingestUC := newIngestUseCase(st)

	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		id := ingestID
		if id == "" {
			id = domain.NormalizeID(path)
		}
		res, err := ingestUC.IngestAs(id, data)
		if err != nil {
			return err
		}
		fmt.Printf("Chunks saved to %s (%d chunks)\n", res.CorpusID, res.Chunks)
		return nil
	}

	files, err := ingestUC.ListSources(path)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No documents found under %s\n", path)
		return nil
	}

	fmt.Printf("Ingesting %d documents from %s...\n", len(files), path)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Ingesting[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	start := time.Now()
	processed := 0
	result, err := ingestUC.IngestDir(path, func(string) {
		processed++
		bar.Set(processed)
		if remaining := len(files) - processed; remaining > 0 {
			rate := float64(processed) / time.Since(start).Seconds()
			eta := time.Duration(float64(remaining)/rate) * time.Second
			bar.Describe(fmt.Sprintf("[cyan]Ingesting[reset] ETA: %s", formatDuration(eta)))
		}
	})
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	fmt.Printf("\nIngest complete:\n")
	fmt.Printf("  Corpora stored: %d\n", len(result.Corpora))
	fmt.Printf("  Chunks created: %d\n", result.ChunksCreated)

	if len(result.Errors) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	return nil
}

// checkBolt warns when stored corpora were chunked with other settings and
// records the current settings once the store is consistent with them.
func checkBolt(st *store.BoltStore) error {
	cfg := GetConfig()

	if ingestRebuild {
		fmt.Println("Clearing stored corpora...")
		if err := st.Clear(); err != nil {
			return fmt.Errorf("failed to clear store: %w", err)
		}
		return st.Migrate(cfg)
	}

	result, err := st.CheckMigration(cfg)
	if err != nil {
		return fmt.Errorf("failed to check migration: %w", err)
	}

	switch {
	case result.NeedsRebuild:
		fmt.Printf("Warning: %s. Run with --rebuild to re-chunk everything.\n", result.Reason)
	case result.NeedsMigration:
		fmt.Printf("Running schema migration: %s\n", result.Reason)
		if err := st.Migrate(cfg); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
