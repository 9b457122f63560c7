package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pdfqa/internal/domain"
)

var (
	queryText       string
	queryCorpus     string
	queryJSON       bool
	queryChunksOnly bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Ask a question about a stored corpus",
	Long: `Rank the chunks of a corpus against a question and answer it with the
configured generation service. An empty question lists every chunk.

Examples:
  pdfqa query -c report -q "what was revenue in Q3"
  pdfqa query -c report -q "revenue" --chunks-only --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "question to ask")
	queryCmd.Flags().StringVarP(&queryCorpus, "corpus", "c", "", "corpus identifier (required)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.Flags().BoolVar(&queryChunksOnly, "chunks-only", false, "rank chunks without generating an answer")
	queryCmd.MarkFlagRequired("corpus")
}

func runQuery(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	queryUC, err := newQueryUseCase(st, !queryChunksOnly)
	if err != nil {
		return err
	}

	req := domain.QueryRequest{Prompt: queryText, CorpusID: queryCorpus}

	var resp *domain.QueryResponse
	if queryChunksOnly {
		ranked, err := queryUC.Retrieve(req)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		resp = &domain.QueryResponse{Chunks: ranked}
	} else {
		resp, err = queryUC.Query(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
	}

	if queryJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(resp.Chunks) == 0 {
		fmt.Println("No relevant chunks found.")
	} else {
		fmt.Printf("Found %d chunks in %s\n\n", len(resp.Chunks), queryCorpus)
		for i, c := range resp.Chunks {
			fmt.Printf("--- [%d] (score: %.2f) ---\n", i+1, c.Similarity)
			text := c.Text
			if len(text) > 500 {
				text = text[:500] + "..."
			}
			fmt.Println(text)
			fmt.Println()
		}
	}

	if !queryChunksOnly && resp.GeminiResponse != "" {
		fmt.Printf("Answer:\n%s\n", resp.GeminiResponse)
	}
	return nil
}
