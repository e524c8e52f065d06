package notifier

import "errors"

var (
	// ErrPublish возвращается при ошибке публикации события
	// Вызывающие стороны логируют её и никогда не откатывают операцию:
	// доставка уведомлений fire-and-forget
	ErrPublish = errors.New("notifier: failed to publish event")
)
