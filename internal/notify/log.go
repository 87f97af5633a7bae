package notify

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// LogNotifier writes emails to the process log instead of sending them.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendOrderConfirmation(_ context.Context, o OrderSummary) Result {
	id := uuid.NewString()
	n.logger.Printf("email to=%s subject=%q total=%.2f items=%d id=%s", o.CustomerEmail, ConfirmationSubject(o), o.TotalAmount, len(o.Items), id)
	return Result{Success: true, MessageID: id}
}

func (n *LogNotifier) SendStatusUpdate(_ context.Context, o OrderSummary, newStatus string) Result {
	id := uuid.NewString()
	n.logger.Printf("email to=%s subject=%q id=%s", o.CustomerEmail, StatusUpdateSubject(o, newStatus), id)
	return Result{Success: true, MessageID: id}
}
