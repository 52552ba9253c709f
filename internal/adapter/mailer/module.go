package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/trivima/assetstore/internal/config"
)

// Module provides the SMTP sender.
var Module = fx.Provide(newSender)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) (*Sender, error) {
	smtp := p.Config.SMTP
	if smtp.Username == "" {
		p.Logger.Warn("smtp account missing, download emails will not be sent")
	}
	return NewSender(Settings{
		Host:     smtp.Host,
		Port:     smtp.Port,
		Username: smtp.Username,
		Password: smtp.Password,
	}, p.Logger)
}
