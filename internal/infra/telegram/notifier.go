// Package telegram posts issued contracts to a Telegram chat through the Bot
// API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.telegram.org"

type Notifier struct {
	BaseURL string
	Token   string
	ChatID  string
	HTTP    *http.Client
}

func NewNotifier(baseURL, token, chatID string) *Notifier {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Notifier{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		ChatID:  chatID,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether a bot token and a target chat are configured.
func (n *Notifier) Enabled() bool {
	return n.Token != "" && n.ChatID != ""
}

// NotifyDocument sends data as a PDF document with an optional caption.
func (n *Notifier) NotifyDocument(ctx context.Context, fileName, caption string, data []byte) error {
	urlStr := fmt.Sprintf("%s/bot%s/sendDocument", n.BaseURL, n.Token)
	body, contentType := buildDocumentMultipart(n.ChatID, caption, fileName, "application/pdf", data)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, body)
	if err != nil {
		return fmt.Errorf("telegram: sendDocument: %w", withoutURL(err))
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := n.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: sendDocument: %w", withoutURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("telegram: sendDocument status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("telegram: sendDocument: decode: %w", err)
	}
	if !out.OK {
		return fmt.Errorf("telegram: sendDocument: %s", out.Description)
	}
	return nil
}

// withoutURL drops the request URL from transport errors: it carries the bot
// token.
func withoutURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}

func buildDocumentMultipart(chatID, caption, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("chat_id", chatID)
	if strings.TrimSpace(caption) != "" {
		_ = writer.WriteField("caption", caption)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="document"; filename="%s"`, escapeQuotes(filename)))
	header.Set("Content-Type", contentType)
	part, _ := writer.CreatePart(header)
	_, _ = part.Write(data)
	_ = writer.Close()
	return body, writer.FormDataContentType()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
