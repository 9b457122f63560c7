package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pdfqa/internal/adapter/store"
	"pdfqa/internal/domain"
)

var (
	corporaDelete string
	corporaClear  bool
	corporaJSON   bool
)

var corporaCmd = &cobra.Command{
	Use:   "corpora",
	Short: "List or delete stored corpora",
	Long: `List the stored corpora with their chunk counts.

Examples:
  pdfqa corpora
  pdfqa corpora --delete report
  pdfqa corpora --clear          # bolt backend only`,
	RunE: runCorpora,
}

func init() {
	rootCmd.AddCommand(corporaCmd)
	corporaCmd.Flags().StringVar(&corporaDelete, "delete", "", "delete the named corpus")
	corporaCmd.Flags().BoolVar(&corporaClear, "clear", false, "delete every corpus (bolt backend)")
	corporaCmd.Flags().BoolVar(&corporaJSON, "json", false, "output as JSON")
}

func runCorpora(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	switch {
	case corporaDelete != "":
		if err := domain.ValidateID(corporaDelete); err != nil {
			return err
		}
		if err := st.Delete(corporaDelete); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", corporaDelete)
		return nil
	case corporaClear:
		bolt, ok := st.(*store.BoltStore)
		if !ok {
			return fmt.Errorf("--clear requires the bolt storage backend")
		}
		if err := bolt.Clear(); err != nil {
			return fmt.Errorf("failed to clear store: %w", err)
		}
		fmt.Println("All corpora deleted")
		return nil
	}

	infos, err := st.List()
	if err != nil {
		return err
	}

	if corporaJSON {
		if infos == nil {
			infos = []domain.CorpusInfo{}
		}
		output, _ := json.MarshalIndent(infos, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(infos) == 0 {
		fmt.Println("No corpora stored.")
		return nil
	}
	for _, info := range infos {
		fmt.Printf("%-40s %6d chunks\n", info.ID, info.Chunks)
	}
	return nil
}
