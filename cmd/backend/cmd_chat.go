package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	aipkg "github.com/adopour/backend/internal/ai"
	"github.com/adopour/backend/internal/http/response"
	assistantpkg "github.com/adopour/backend/internal/services/assistant"
	"github.com/adopour/backend/internal/stream"
)

var chatCommand = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the assistant through a running server",
	Long:  "Reads prompts from stdin, one per line, and prints the streamed replies.",
	RunE: func(cmd *cobra.Command, args []string) error {
		loadEnv()

		baseURL, _ := cmd.Flags().GetString("url")
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			token = os.Getenv("ADOPOUR_TOKEN")
		}

		client := &chatClient{
			http:    http.DefaultClient,
			baseURL: strings.TrimRight(baseURL, "/"),
			token:   token,
		}
		return client.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

type chatClient struct {
	http     *http.Client
	baseURL  string
	token    string
	messages []aipkg.Message
}

// Run sends the recent conversation with every prompt, keeping within the
// server's message limits.
func (c *chatClient) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")

	for scanner.Scan() {
		prompt := strings.TrimSpace(scanner.Text())
		if prompt == "" {
			fmt.Fprint(out, "> ")
			continue
		}

		c.messages = trimHistory(append(c.messages, aipkg.Message{Role: aipkg.RoleUser, Content: prompt}))
		reply, err := c.send(ctx, out)
		fmt.Fprintln(out)
		if err != nil {
			c.messages = c.messages[:len(c.messages)-1]
			fmt.Fprintln(out, "error:", err)
		} else {
			c.messages = append(c.messages, aipkg.Message{Role: aipkg.RoleAssistant, Content: truncateRunes(reply, assistantpkg.ChatMaxContentLength)})
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

// trimHistory drops the oldest turns so the history fits the server's limit
// and still opens with a user message.
func trimHistory(messages []aipkg.Message) []aipkg.Message {
	if len(messages) > assistantpkg.ChatMaxMessages {
		messages = messages[len(messages)-assistantpkg.ChatMaxMessages:]
	}
	for len(messages) > 0 && messages[0].Role != aipkg.RoleUser {
		messages = messages[1:]
	}
	return messages
}

func truncateRunes(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max])
}

func (c *chatClient) send(ctx context.Context, out io.Writer) (string, error) {
	body, err := json.Marshal(map[string]any{"messages": c.messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorBody response.ErrorBody
		if json.NewDecoder(resp.Body).Decode(&errorBody) == nil && errorBody.Error != "" {
			return "", errors.New(errorBody.Error)
		}
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	return stream.ReadText(resp.Body, func(delta string) {
		fmt.Fprint(out, delta)
	})
}

func init() {
	chatCommand.Flags().String("url", "http://localhost:8080", "server base URL")
	chatCommand.Flags().String("token", "", "access token, defaults to $ADOPOUR_TOKEN")
	rootCommand.AddCommand(chatCommand)
}
