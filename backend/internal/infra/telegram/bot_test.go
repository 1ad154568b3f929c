package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type senderStub struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (s *senderStub) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if s.err != nil {
		return tgbotapi.Message{}, s.err
	}
	s.sent = append(s.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func TestSendTextTargetsConfiguredChat(t *testing.T) {
	stub := &senderStub{}
	n := &Notifier{api: stub, chatID: -100123}

	if err := n.SendText(context.Background(), "  hello  "); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(stub.sent) != 1 || stub.sent[0].ChatID != -100123 || stub.sent[0].Text != "hello" {
		t.Fatalf("unexpected messages: %+v", stub.sent)
	}
}

func TestSendTextSkipsBlankAndTruncates(t *testing.T) {
	stub := &senderStub{}
	n := &Notifier{api: stub, chatID: 1}

	if err := n.SendText(context.Background(), "   "); err != nil {
		t.Fatalf("blank send: %v", err)
	}
	if len(stub.sent) != 0 {
		t.Fatalf("blank text must not be sent")
	}

	if err := n.SendText(context.Background(), strings.Repeat("x", maxMessageLen+10)); err != nil {
		t.Fatalf("long send: %v", err)
	}
	if len(stub.sent[0].Text) != maxMessageLen {
		t.Fatalf("expected truncation to %d, got %d", maxMessageLen, len(stub.sent[0].Text))
	}
}

func TestSendTextWrapsError(t *testing.T) {
	boom := errors.New("boom")
	n := &Notifier{api: &senderStub{err: boom}, chatID: 1}
	if err := n.SendText(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestNewNotifierValidatesInput(t *testing.T) {
	if _, err := NewNotifier("", 1); err == nil {
		t.Fatalf("expected error for empty token")
	}
	if _, err := NewNotifier("token", 0); err == nil {
		t.Fatalf("expected error for empty chat id")
	}
}
