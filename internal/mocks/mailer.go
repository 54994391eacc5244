package mocks

import (
	"sync"

	"github.com/VitaminP8/bloggery/internal/mailer"
)

// MockMailer запоминает отправленные сообщения вместо реальной доставки
type MockMailer struct {
	mu   sync.Mutex
	Sent []mailer.Message
	Err  error // если задана - Send возвращает ее
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.Sent = append(m.Sent, msg)
	return nil
}
