package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/scholar-cli/internal/core/domain"
	"github.com/custodia-labs/scholar-cli/internal/core/services"
)

var (
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive research chat",
	Long: `Start an interactive session with the research assistant.

The assistant decides per turn whether to answer directly, fetch new
papers from arXiv, or summarize the most relevant cached paper. The
conversation transcript is kept for the whole session, so follow-up
questions see earlier answers and tool results.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	transcript := domain.NewTranscript(domain.Message{
		Role:    domain.RoleSystem,
		Content: services.SystemPrompt,
	})

	cmd.Println("Scholar research chat. Ask about a topic, or type 'exit' to quit.")
	cmd.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		cmd.Print(promptStyle.Render("you>") + " ")

		line, err := reader.ReadString('\n')
		if err != nil {
			// EOF: the user closed stdin
			cmd.Println()
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return nil
		}

		transcript.Append(domain.Message{Role: domain.RoleUser, Content: input})

		answer, err := assistantService.Answer(cmd.Context(), transcript)
		if err != nil {
			cmd.Println(errorStyle.Render(fmt.Sprintf("error: %v", err)))
			continue
		}

		cmd.Println(assistantStyle.Render(answer))
		cmd.Println()
	}
}
