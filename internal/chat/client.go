// Package chat talks to the chat backend's message API. One call per action,
// no retries: a failed create/update surfaces as a status failure upstream.
package chat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"tally/internal/models"
)

type Client struct {
	baseUrl string
	token   string
	cli     http.Client
}

func NewClient(baseUrl, token string) *Client {
	return &Client{
		baseUrl: baseUrl,
		token:   token,
		cli:     http.Client{Timeout: time.Second * 5},
	}
}

// CreateMessage posts a fresh card into a space.
func (c *Client) CreateMessage(ctx context.Context, space string, card models.Card) error {
	endpoint := fmt.Sprintf("%s/spaces/%s/messages", c.baseUrl, url.PathEscape(space))
	return c.send(ctx, http.MethodPost, endpoint, card)
}

// UpdateMessage replaces the card of an existing message. Only the card is
// touched; message text and thread stay as they are.
func (c *Client) UpdateMessage(ctx context.Context, message string, card models.Card) error {
	endpoint := fmt.Sprintf("%s/messages/%s?updateMask=card", c.baseUrl, url.PathEscape(message))
	return c.send(ctx, http.MethodPut, endpoint, card)
}

func (c *Client) send(ctx context.Context, method, endpoint string, card models.Card) error {
	body, err := json.Marshal(models.Card{"card": card})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.cli.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("endpoint", endpoint).Msg("消息接口请求失败")
		return fmt.Errorf("%w: %s", models.ErrExternalCall, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ret, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Warn().Int("status", resp.StatusCode).Bytes("body", ret).Msg("消息接口返回异常")
		return fmt.Errorf("%w: status %d", models.ErrExternalCall, resp.StatusCode)
	}
	return nil
}
