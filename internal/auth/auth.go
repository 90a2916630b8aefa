package auth

import "sync"

// Admins хранит Telegram ID пользователей, которым доступны служебные команды.
type Admins struct {
	mu  sync.RWMutex
	ids map[int64]struct{}
}

// NewAdmins создаёт список администраторов.
// Пустой список означает, что служебные команды доступны всем.
func NewAdmins(ids ...int64) *Admins {
	a := &Admins{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		a.ids[id] = struct{}{}
	}

	return a
}

// Allowed проверяет, может ли пользователь userID выполнять служебные команды.
func (a *Admins) Allowed(userID int64) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if len(a.ids) == 0 {
		return true
	}

	_, ok := a.ids[userID]

	return ok
}

// Add добавляет администратора.
func (a *Admins) Add(userID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ids[userID] = struct{}{}
}

// Len возвращает количество администраторов.
func (a *Admins) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.ids)
}
