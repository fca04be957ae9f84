package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiBase = "https://api.telegram.org"

type Client struct {
	httpClient *http.Client
	token      string
}

// Response represents a Bot API envelope.
type Response struct {
	Ok          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
}

func NewClient(token string) *Client {
	return &Client{
		// No global timeout: getUpdates long-polls, so deadlines come from
		// the per-request context instead.
		httpClient: &http.Client{},
		token:      token,
	}
}

// GetUpdates long-polls for updates after offset. timeout is in seconds.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout int) ([]Update, error) {
	params := url.Values{
		"offset":  {fmt.Sprintf("%d", offset)},
		"timeout": {fmt.Sprintf("%d", timeout)},
	}

	// Leave headroom over the server-side poll timeout.
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeout+10)*time.Second)
	defer cancel()

	resp, err := c.makeRequest(ctx, "getUpdates", params)
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err := json.Unmarshal(resp.Result, &updates); err != nil {
		return nil, fmt.Errorf("failed to parse updates: %w", err)
	}
	return updates, nil
}

// SendMessage sends text to a chat. markup is any of the keyboard markup
// types or nil.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, markup interface{}) error {
	params := url.Values{
		"chat_id": {fmt.Sprintf("%d", chatID)},
		"text":    {text},
	}
	if err := encodeMarkup(params, markup); err != nil {
		return err
	}

	_, err := c.makeRequest(ctx, "sendMessage", params)
	return err
}

// EditMessageText replaces the text (and inline keyboard) of a sent message.
func (c *Client) EditMessageText(ctx context.Context, chatID, messageID int64, text string, markup *InlineKeyboardMarkup) error {
	params := url.Values{
		"chat_id":    {fmt.Sprintf("%d", chatID)},
		"message_id": {fmt.Sprintf("%d", messageID)},
		"text":       {text},
	}
	if markup != nil {
		if err := encodeMarkup(params, markup); err != nil {
			return err
		}
	}

	_, err := c.makeRequest(ctx, "editMessageText", params)
	return err
}

// AnswerCallbackQuery acknowledges a callback button press.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID, text string, showAlert bool) error {
	params := url.Values{
		"callback_query_id": {callbackID},
	}
	if text != "" {
		params.Set("text", text)
	}
	if showAlert {
		params.Set("show_alert", "true")
	}

	_, err := c.makeRequest(ctx, "answerCallbackQuery", params)
	return err
}

func encodeMarkup(params url.Values, markup interface{}) error {
	if markup == nil {
		return nil
	}
	data, err := json.Marshal(markup)
	if err != nil {
		return fmt.Errorf("failed to marshal reply markup: %w", err)
	}
	params.Set("reply_markup", string(data))
	return nil
}

func (c *Client) makeRequest(ctx context.Context, method string, params url.Values) (*Response, error) {
	endpoint := fmt.Sprintf("%s/bot%s/%s", apiBase, c.token, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var apiResp Response
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if !apiResp.Ok {
		return nil, fmt.Errorf("telegram API error %d: %s", apiResp.ErrorCode, apiResp.Description)
	}
	return &apiResp, nil
}
