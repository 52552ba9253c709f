package delivery

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/trivima/assetstore/internal/domain/model"
)

const subjectPrefix = "Your 3D Assets are Ready for Download - Order #"

// MessageSender transmits a composed email.
type MessageSender interface {
	Send(ctx context.Context, msg *mail.Msg) error
	From() string
}

// Options controls the content of the download email.
type Options struct {
	Brand        string
	FrontendURL  string
	SupportEmail string
}

// Notifier composes and sends the download email for a paid order.
type Notifier struct {
	sender MessageSender
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

// NewNotifier constructs Notifier.
func NewNotifier(sender MessageSender, opts Options, logger *slog.Logger) *Notifier {
	opts.FrontendURL = strings.TrimRight(opts.FrontendURL, "/")
	return &Notifier{sender: sender, opts: opts, logger: logger, now: time.Now}
}

type downloadItem struct {
	Name     string
	Quantity int64
	URL      string
	Drive    bool
}

type emailData struct {
	Name         string
	OrderID      string
	Items        []downloadItem
	OrdersURL    string
	SupportEmail string
	Brand        string
	Year         int
}

// Notify sends one email listing a download link per item that carries an
// asset reference. When no item qualifies nothing is sent.
func (n *Notifier) Notify(ctx context.Context, to, name, orderID string, items []model.LineItem) error {
	downloads := downloadable(items)
	if len(downloads) == 0 {
		n.logger.Info("no downloadable items in order", slog.String("order_id", orderID))
		return nil
	}

	body, err := n.render(emailData{
		Name:         name,
		OrderID:      orderID,
		Items:        downloads,
		OrdersURL:    n.opts.FrontendURL + "/orders",
		SupportEmail: n.opts.SupportEmail,
		Brand:        n.opts.Brand,
		Year:         n.now().Year(),
	})
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(n.opts.Brand, n.sender.From()); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subjectPrefix + orderID)
	msg.SetMessageID()
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := n.sender.Send(ctx, msg); err != nil {
		return err
	}
	n.logger.Info("download email sent",
		slog.String("order_id", orderID),
		slog.Int("items", len(downloads)),
	)
	return nil
}

func (n *Notifier) render(data emailData) (string, error) {
	var buf bytes.Buffer
	if err := downloadTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render download email: %w", err)
	}
	return buf.String(), nil
}

func downloadable(items []model.LineItem) []downloadItem {
	out := make([]downloadItem, 0, len(items))
	for _, item := range items {
		if item.AssetURL == "" {
			continue
		}
		out = append(out, downloadItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			URL:      DownloadURL(item.AssetURL, item.AssetType),
			Drive:    item.AssetType == model.AssetTypeDriveLink,
		})
	}
	return out
}
