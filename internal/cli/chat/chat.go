package chat

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mana2/mana-cli/internal/chat"
	"github.com/mana2/mana-cli/internal/cli"
	"github.com/mana2/mana-cli/internal/models"
	chattui "github.com/mana2/mana-cli/internal/tui/chat"
)

// SendCmd sends one message to the assistant and prints the reply.
type SendCmd struct {
	Message []string `arg:"" help:"Message for the assistant."`
}

func (c *SendCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.Assistant.Start(bg); err != nil {
		return err
	}

	reply, err := ctx.Assistant.Send(bg, strings.Join(c.Message, " "))
	if reply.Text != "" {
		ctx.Println(chat.RenderMarkdown(reply.Text))
	}
	return err
}

type HistoryCmd struct {
	Last int `help:"Only show the last N messages." short:"n"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Assistant.Start(context.Background())
	if err != nil {
		return err
	}

	msgs := st.Messages
	if c.Last > 0 && len(msgs) > c.Last {
		msgs = msgs[len(msgs)-c.Last:]
	}
	for _, m := range msgs {
		printMessage(ctx, m)
	}
	return nil
}

func printMessage(ctx *cli.Context, m models.ChatMessage) {
	who := "Tú"
	if m.IsBot {
		who = "Asistente"
	}
	stamp := m.Timestamp.In(ctx.Config.Location()).Format("15:04")
	ctx.Printf("%s %s\n", cli.HeaderStyle.Render(who), stamp)
	ctx.Println(chat.RenderMarkdown(m.Text))
	ctx.Println()
}

// ClearCmd deletes the stored transcript; the welcome is shown again next time.
type ClearCmd struct{}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.Assistant.Start(bg); err != nil {
		return err
	}
	if err := ctx.Assistant.Reset(bg); err != nil {
		return err
	}
	ctx.Println("✓ Conversación eliminada")
	return nil
}

// OpenCmd opens the interactive chat window.
type OpenCmd struct{}

func (c *OpenCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.Assistant.Start(bg); err != nil {
		return err
	}
	if err := ctx.Assistant.SetWindow(bg, true, false); err != nil {
		return err
	}

	m := chattui.New(ctx.Assistant, ctx.Config.Location())
	_, runErr := tea.NewProgram(m, tea.WithAltScreen()).Run()

	if err := ctx.Assistant.SetWindow(bg, false, false); err != nil && !errors.Is(err, chat.ErrNotStarted) {
		return err
	}
	return runErr
}
