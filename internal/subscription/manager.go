package subscription

import (
	"sync"
	"time"

	"github.com/VitaminP8/bloggery/models"
)

// SubscriptionManager раздает новые комментарии подписчикам поста
type SubscriptionManager struct {
	mu   sync.Mutex
	subs map[uint][]chan *models.Comment // postID -> список каналов подписчиков
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subs: make(map[uint][]chan *models.Comment),
	}
}

func (m *SubscriptionManager) Subscribe(postID uint) (<-chan *models.Comment, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *models.Comment, 1) // Буфер 1, чтобы не блокировался писатель

	m.subs[postID] = append(m.subs[postID], ch)

	// функция для отписки
	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		subscribers := m.subs[postID]
		for i, sub := range subscribers {
			if sub == ch {
				// Удаляем подписчика
				m.subs[postID] = append(subscribers[:i], subscribers[i+1:]...)
				close(ch)
				break
			}
		}
	}

	return ch, cancel
}

func (m *SubscriptionManager) Publish(postID uint, comment *models.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subs[postID] {
		select {
		case sub <- comment:
		case <-time.After(500 * time.Millisecond):
			// Если канал заполнен, ждем короткое время
		}
	}
}
