package cli

import (
	"bufio"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage scholar configuration",
	Long: `View and change settings stored in the scholar config file.

Recognized keys:
  openai.api_key          OpenAI API key (prefer 'config set-key')
  openai.model            chat model (default gpt-4o-mini)
  openai.embedding_model  embedding model (default text-embedding-3-small)
  chunker.target_size     target chunk size in tokens (default 1500)
  arxiv.max_results       papers fetched per search (default 10)
  summarizer.best_effort  tolerate failed chunks when summarizing`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Set the OpenAI API key",
	Long:  `Prompts for the OpenAI API key without echoing it and saves it to the config file.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigSetKey,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := ensureConfig()
	if err != nil {
		return err
	}

	cmd.Printf("Config file: %s\n\n", cfg.Path())

	cmd.Println("[OpenAI]")
	if key := cfg.GetString(keyAPIKey); key != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(key))
	} else if os.Getenv("OPENAI_API_KEY") != "" {
		cmd.Println("  API Key: (from environment)")
	} else {
		cmd.Println("  API Key: (not set)")
	}
	cmd.Printf("  Chat model: %s\n", orDefault(cfg.GetString(keyChatModel), "gpt-4o-mini"))
	cmd.Printf("  Embedding model: %s\n", orDefault(cfg.GetString(keyEmbeddingModel), "text-embedding-3-small"))
	cmd.Println()

	cmd.Println("[Pipeline]")
	cmd.Printf("  Chunk target size: %s\n", orDefaultInt(cfg.GetInt(keyTargetSize), 1500))
	cmd.Printf("  Results per search: %s\n", orDefaultInt(cfg.GetInt(keyMaxResults), 10))
	cmd.Printf("  Best-effort summaries: %t\n", cfg.GetBool(keyBestEffort))

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := ensureConfig()
	if err != nil {
		return err
	}

	key, raw := args[0], args[1]
	if err := cfg.Set(key, parseValue(raw)); err != nil {
		return err
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

func runConfigSetKey(cmd *cobra.Command, _ []string) error {
	cfg, err := ensureConfig()
	if err != nil {
		return err
	}

	cmd.Print("Enter OpenAI API key: ")
	key := readPassword()
	cmd.Println()
	if key == "" {
		return errors.New("no key entered")
	}

	if err := cfg.Set(keyAPIKey, key); err != nil {
		return err
	}

	cmd.Printf("API key saved to %s\n", cfg.Path())
	return nil
}

// parseValue keeps TOML types useful: integers and booleans are stored
// as such, everything else as a string.
func parseValue(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback + " (default)"
	}
	return value
}

func orDefaultInt(value, fallback int) string {
	if value == 0 {
		return strconv.Itoa(fallback) + " (default)"
	}
	return strconv.Itoa(value)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Read without echo when attached to a terminal
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
