package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// promptTags asks for whitespace-separated tag patterns on the terminal.
// Ctrl-C and EOF yield an empty token list, which the caller rejects.
func promptTags() ([]string, error) {
	rl, err := readline.New("Search (whitespace separated): ")
	if err != nil {
		return nil, fmt.Errorf("opening prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	line, err := rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return strings.Fields(line), nil
}

// waitForEnter keeps the window open after an interactive run.
func waitForEnter(cmd *cobra.Command) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\npress enter to quit")
	reader := bufio.NewReader(cmd.InOrStdin())
	_, _ = reader.ReadString('\n')
}
