package worker

import (
	"context"
)

// Worker интерфейс для фоновых задач приложения
type Worker interface {
	// Start блокируется до завершения работы или остановки
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру остановиться
	Stop() error

	// Name возвращает имя воркера
	Name() string
}
