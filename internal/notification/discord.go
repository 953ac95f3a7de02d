package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"time"
)

type DiscordMessage struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

type DiscordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

const (
	colorRed   = 16711680
	colorGreen = 65280
)

// Discord posts notifications to a pair of webhooks. An empty URL
// disables that kind of notification.
type Discord struct {
	SuccessURL string
	ErrorURL   string
	Client     *http.Client
}

func NewDiscord(successURL, errorURL string) *Discord {
	return &Discord{
		SuccessURL: successURL,
		ErrorURL:   errorURL,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// RegisterOutput announces a produced file on the success webhook.
func (d *Discord) RegisterOutput(path string) error {
	return d.SendSuccessNotification(fmt.Sprintf("Created %s\n\n%s", filepath.Base(path), path))
}

func (d *Discord) SendErrorNotification(errorMessage string) error {
	return d.send(d.ErrorURL, DiscordEmbed{
		Title:       "🚨 Error Notification",
		Description: fmt.Sprintf("An error occurred: %s", errorMessage),
		Color:       colorRed,
	})
}

func (d *Discord) SendSuccessNotification(successMessage string) error {
	return d.send(d.SuccessURL, DiscordEmbed{
		Title:       "✅ Success Notification",
		Description: successMessage,
		Color:       colorGreen,
	})
}

func (d *Discord) send(url string, embed DiscordEmbed) error {
	if url == "" {
		return nil
	}

	payload, err := json.Marshal(DiscordMessage{Embeds: []DiscordEmbed{embed}})
	if err != nil {
		return err
	}

	resp, err := d.Client.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to send Discord notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send Discord notification, status code: %d", resp.StatusCode)
	}

	return nil
}
