// Package events 提供类型安全的同步事件总线
//
// 每种事件负载对应一个 Bus[T]，订阅者按注册顺序在 Publish 调用方的线程上同步执行。
// 与全局字符串命名的通知不同，总线由拥有者显式创建并传递。
package events

// Bus 单一事件类型的总线
type Bus[T any] struct {
	handlers []subscription[T]
	nextID   int
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// NewBus 创建事件总线
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe 注册处理函数，返回取消订阅函数（可重复调用）
func (b *Bus[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, subscription[T]{id: id, fn: fn})

	return func() {
		for i, s := range b.handlers {
			if s.id == id {
				b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish 按注册顺序同步分发事件
//
// 分发期间新增或取消的订阅从下一次 Publish 起生效。
func (b *Bus[T]) Publish(ev T) {
	if b == nil || len(b.handlers) == 0 {
		return
	}
	snapshot := make([]subscription[T], len(b.handlers))
	copy(snapshot, b.handlers)
	for _, s := range snapshot {
		s.fn(ev)
	}
}

// HandlerCount 当前订阅者数量
func (b *Bus[T]) HandlerCount() int {
	return len(b.handlers)
}
