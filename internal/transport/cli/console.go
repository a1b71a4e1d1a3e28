package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/merrysway/baristabot/internal/core"
	"github.com/merrysway/baristabot/internal/service/chat"
	"github.com/merrysway/baristabot/internal/service/ui"
	"github.com/merrysway/baristabot/pkg/log"
)

const defaultSessionID = "cli-local"

// Console is the interactive terminal chat. It shares the same chat
// service as the Telegram transport, so a conversation started here
// persists in the same history store.
type Console struct {
	chat *chat.Service
	in   io.Reader
	out  io.Writer
}

func NewConsole(chatSvc *chat.Service) *Console {
	return &Console{
		chat: chatSvc,
		in:   os.Stdin,
		out:  os.Stdout,
	}
}

func (c *Console) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("console chat started, type 'exit' to quit")

	fmt.Fprintln(c.out, ui.TitleStyle.Render(fmt.Sprintf("%s | welcome to Merry's Way", core.BotName)))

	scanner := bufio.NewScanner(c.in)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprint(c.out, ui.PromptStyle.Render(">>> "))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return nil // EOF
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		reply, err := c.chat.Run(ctx, defaultSessionID, line)
		if err != nil {
			logger.Error().Err(err).Msg("chat turn failed")
			fmt.Fprintf(c.out, "Error: %v\n", err)
			continue
		}
		if reply != "" {
			fmt.Fprintln(c.out, ui.BotStyle.Render(reply))
		}
	}
}

func (c *Console) Shutdown(ctx context.Context) error {
	return nil
}
