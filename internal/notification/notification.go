package notification

import (
	"context"
	"log/slog"
)

const (
	KindDeposit  = "ledger.deposit"
	KindWithdraw = "ledger.withdraw"
	KindTransfer = "ledger.transfer"
	KindFund     = "ledger.fund"
)

// Message describes a notification payload. Destination is a wallet id.
type Message struct {
	Kind          string
	Destination   string
	TransactionID string
	Body          string
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier writes notifications to the structured logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification",
		"kind", message.Kind,
		"destination", message.Destination,
		"transaction_id", message.TransactionID,
		"body", message.Body,
	)
	return nil
}
