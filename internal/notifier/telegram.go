package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"RoboAdvisor/internal/httpclient"
)

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	BaseURL  string
	BotToken string
	Client   *http.Client
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, proxyURL string) *TelegramNotifier {
	return &TelegramNotifier{
		BaseURL:  "https://api.telegram.org",
		BotToken: botToken,
		Client:   httpclient.New(proxyURL),
	}
}

// Send posts the message to chat recipient. Telegram only accepts a small
// subset of HTML, so block-level markup is flattened to line breaks.
func (t *TelegramNotifier) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.BotToken)
	payload := map[string]string{
		"chat_id":    recipient,
		"text":       "<b>" + subject + "</b>\n\n" + telegramHTML(htmlBody),
		"parse_mode": "HTML",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

var (
	lineBreakTags   = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</h[1-6]>|</li>|</tr>`)
	unsupportedTags = regexp.MustCompile(`(?i)</?(?:html|body|head|div|span|p|h[1-6]|ul|ol|li|table|tbody|tr|td|th)(?:\s[^>]*)?>`)
	blankLines      = regexp.MustCompile(`\n{3,}`)
)

func telegramHTML(s string) string {
	s = lineBreakTags.ReplaceAllString(s, "\n")
	s = unsupportedTags.ReplaceAllString(s, "")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
