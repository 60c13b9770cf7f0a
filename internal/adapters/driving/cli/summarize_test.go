package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeCmd_Use(t *testing.T) {
	assert.Equal(t, "summarize [query]", summarizeCmd.Use)
}

func TestSummarizeCmd_PrintsSummary(t *testing.T) {
	_, summarizer, _, _, cleanup := setupTestServices()
	defer cleanup()
	summarizer.summary = "Core Argument: attention suffices."

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"summarize", "what do transformers do"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, []string{"what do transformers do"}, summarizer.queries)
	assert.Contains(t, buf.String(), "Core Argument: attention suffices.")
}

func TestSummarizeCmd_SurfacesFailure(t *testing.T) {
	_, summarizer, _, _, cleanup := setupTestServices()
	defer cleanup()
	summarizer.err = errors.New("extraction failed")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"summarize", "anything"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "extraction failed")
}
