package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pdfqa/internal/domain"
)

var chatCorpus string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions about a corpus interactively",
	Long: `Start an interactive session against one corpus. Each line is a question;
an empty line is ignored. Type "exit" or press Ctrl-D to leave.

Example:
  pdfqa chat -c report`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatCorpus, "corpus", "c", "", "corpus identifier (required)")
	chatCmd.MarkFlagRequired("corpus")
}

func runChat(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := domain.ValidateID(chatCorpus); err != nil {
		return err
	}
	if _, err := st.Load(chatCorpus); err != nil {
		return err
	}

	queryUC, err := newQueryUseCase(st, true)
	if err != nil {
		return err
	}

	session := domain.Session{CorpusID: chatCorpus}
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	fmt.Printf("Chatting with %s. Type \"exit\" to quit.\n", chatCorpus)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		var resp *domain.QueryResponse
		session, resp, err = queryUC.Ask(cmd.Context(), session, line)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n\n", resp.GeminiResponse)
	}

	return scanner.Err()
}
