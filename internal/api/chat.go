package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mana2/mana-cli/internal/models"
)

// Chat sends message to the assistant on behalf of userID and returns the
// reply text. The chat service is called without credentials.
func (c *Client) Chat(ctx context.Context, userID int, message string) (string, error) {
	req := models.ChatRequest{UserID: userID, Message: message}

	status, data, err := c.send(ctx, http.MethodPost, c.cfg.ChatURL(), req, nil)
	if err != nil {
		return "", err
	}
	switch {
	case status == http.StatusNotFound:
		return "", ErrChatUserNotFound
	case status < 200 || status >= 300:
		return "", newStatusError(status, data)
	}

	var resp models.ChatResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if resp.Error != "" {
		return "", errors.New(resp.Error)
	}
	if strings.TrimSpace(resp.Response) == "" {
		return "", ErrEmptyReply
	}
	return resp.Response, nil
}
