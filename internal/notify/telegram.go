// Package notify delivers best-effort order notifications. Delivery
// failures are reported to the caller only so they can be logged; they
// must never fail the checkout that triggered them.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/3DMakc/3d-makc-fishing-store/internal/domain"
	"github.com/3DMakc/3d-makc-fishing-store/internal/format"
)

type Notifier interface {
	OrderPlaced(o domain.Order, items []domain.OrderItem) error
}

// Telegram posts the order summary to a chat via the Bot API. An empty
// token or chat id disables it: OrderPlaced becomes a no-op.
type Telegram struct {
	Token   string
	ChatID  string
	APIBase string // overridable in tests; defaults to api.telegram.org
	Client  *http.Client
}

func NewTelegram(token, chatID string) *Telegram {
	return &Telegram{
		Token:   token,
		ChatID:  chatID,
		APIBase: "https://api.telegram.org",
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *Telegram) OrderPlaced(o domain.Order, items []domain.OrderItem) error {
	if t.Token == "" || t.ChatID == "" {
		return nil
	}
	payload, err := json.Marshal(map[string]any{
		"chat_id":    t.ChatID,
		"text":       orderMessage(o, items),
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.APIBase, t.Token)
	resp, err := t.Client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram sendMessage: status %d", resp.StatusCode)
	}
	return nil
}

func orderMessage(o domain.Order, items []domain.OrderItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Новый заказ #%d</b>\n", o.ID)
	fmt.Fprintf(&b, "Имя: <b>%s</b>\n", o.FullName)
	fmt.Fprintf(&b, "Тел: <b>%s</b>\n", o.Phone)
	fmt.Fprintf(&b, "Город: <b>%s</b>\n", o.City)
	if o.Region != "" {
		fmt.Fprintf(&b, "Область: %s\n", o.Region)
	}
	fmt.Fprintf(&b, "НП: <b>%s</b>\n", o.NPBranch)
	if o.Comment != "" {
		fmt.Fprintf(&b, "Комментарий: %s\n", o.Comment)
	}
	b.WriteString("\n<b>Товары:</b>\n")
	for _, it := range items {
		fmt.Fprintf(&b, "• %s x%d = %s\n", it.Name, it.Qty, format.Money(it.PriceUAH*float64(it.Qty)))
	}
	fmt.Fprintf(&b, "\n<b>Итого: %s</b>", format.Money(o.TotalUAH))
	return b.String()
}
