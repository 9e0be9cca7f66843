// Package assistant sends farmer questions to the advisory chat backend.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/kisanportal/kisan/internal/api"
)

// Reply is the assistant's answer.
type Reply struct {
	Answer      string   `json:"answer"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type askRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
	Region   string `json:"region,omitempty"`
}

// Asker is implemented by *Client and by test doubles.
type Asker interface {
	Ask(ctx context.Context, question, lang string) (Reply, error)
}

var _ Asker = (*Client)(nil)

// Client talks to the assistant API.
type Client struct {
	api    *api.Client
	region string
}

// NewClient builds a Client. region is sent with every question so answers
// can be localized.
func NewClient(baseURL, token, region string) (*Client, error) {
	c, err := api.NewClient(baseURL, token)
	if err != nil {
		return nil, fmt.Errorf("assistant client: %w", err)
	}
	return &Client{api: c, region: strings.TrimSpace(region)}, nil
}

// Ask sends question in lang (a BCP 47 tag) and returns the answer.
func (c *Client) Ask(ctx context.Context, question, lang string) (Reply, error) {
	if c == nil {
		return Reply{}, fmt.Errorf("client is nil")
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return Reply{}, fmt.Errorf("question is empty")
	}
	req := askRequest{Message: question, Language: lang, Region: c.region}
	var reply Reply
	if err := c.api.Post(ctx, "/api/chat", req, &reply); err != nil {
		return Reply{}, err
	}
	if strings.TrimSpace(reply.Answer) == "" {
		return Reply{}, fmt.Errorf("assistant returned an empty answer")
	}
	return reply, nil
}
