package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/donaldgifford/carfinder/internal/metrics"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

const (
	colorGreen = 0x2ECC71 // summary
	colorBlue  = 0x3498DB // listing

	// Discord allows at most 10 embeds per message; one is the summary.
	maxHighlights = 9
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Thumbnail   *discordThumbnail   `json:"thumbnail,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordThumbnail struct {
	URL string `json:"url"`
}

// SendRefresh posts a summary embed followed by one embed per highlighted
// listing.
func (d *DiscordNotifier) SendRefresh(ctx context.Context, p *RefreshPayload) error {
	start := time.Now()
	err := d.post(ctx, buildPayload(p))
	if err != nil {
		metrics.NotificationFailuresTotal.Inc()
		return err
	}
	metrics.NotificationsSentTotal.Inc()
	metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	return nil
}

func buildPayload(p *RefreshPayload) discordWebhookPayload {
	summary := discordEmbed{
		Title: fmt.Sprintf("Listing refresh: %d new", p.NewListings),
		Color: colorGreen,
		Fields: []discordEmbedField{
			{Name: "New", Value: strconv.Itoa(p.NewListings), Inline: true},
			{Name: "Fetched", Value: strconv.Itoa(p.Fetched), Inline: true},
		},
	}
	if !p.Timestamp.IsZero() {
		summary.Timestamp = p.Timestamp.UTC().Format(time.RFC3339)
	}
	if extra := len(p.Highlights) - maxHighlights; extra > 0 {
		summary.Description = fmt.Sprintf("Showing %d of %d new listings.", maxHighlights, len(p.Highlights))
	}

	embeds := []discordEmbed{summary}
	for i := range min(len(p.Highlights), maxHighlights) {
		embeds = append(embeds, listingEmbed(&p.Highlights[i]))
	}
	return discordWebhookPayload{Embeds: embeds}
}

func listingEmbed(l *domain.VehicleListing) discordEmbed {
	embed := discordEmbed{
		Title: l.Title(),
		URL:   l.ListingURL,
		Color: colorBlue,
		Fields: []discordEmbedField{
			{Name: "Price", Value: formatPrice(l.Price), Inline: true},
			{Name: "Mileage", Value: formatMileage(l.Mileage), Inline: true},
			{Name: "Source", Value: l.Source, Inline: true},
		},
	}
	if l.Location != "" {
		embed.Fields = append(embed.Fields, discordEmbedField{Name: "Location", Value: l.Location, Inline: true})
	}
	if len(l.Images) > 0 {
		embed.Thumbnail = &discordThumbnail{URL: l.Images[0]}
	}
	return embed
}

var printer = message.NewPrinter(language.English)

func formatPrice(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return printer.Sprintf("$%d", int64(*p))
}

func formatMileage(m *int) string {
	if m == nil {
		return "n/a"
	}
	return printer.Sprintf("%d mi", *m)
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return errors.New("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
