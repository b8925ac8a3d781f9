package network

import (
	"sync"

	"dose-response/pkg/api"
)

// Broadcaster занимается только рассылкой снимков наблюдателям.
// Симуляция публикует готовые копии и никогда не ждёт подписчиков.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ID подписчика -> Личный канал
	subscribers map[string]chan api.ServerResponse

	latest    api.ServerResponse
	hasLatest bool
	chunks    []api.ChunkView
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал для наблюдателя
func (b *Broadcaster) Register(id string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// Publish запоминает снимок как последний и рассылает его всем.
func (b *Broadcaster) Publish(msg api.ServerResponse) {
	b.mu.Lock()
	b.latest = msg
	b.hasLatest = true
	b.mu.Unlock()

	b.Broadcast(msg)
}

// Broadcast отправляет всем. Медленный подписчик теряет сообщения, а не тормозит игру.
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Latest возвращает последний опубликованный снимок.
func (b *Broadcaster) Latest() (api.ServerResponse, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest, b.hasLatest
}

// PublishChunks запоминает список созданных чанков для отладочного сервера.
func (b *Broadcaster) PublishChunks(chunks []api.ChunkView) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chunks = chunks
}

// Chunks возвращает последний опубликованный список чанков.
func (b *Broadcaster) Chunks() []api.ChunkView {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.chunks
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
