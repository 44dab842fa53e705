package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/findbus/internal/pkg/errors"
)

// ConnectFunc пытается открыть соединение с базой
type ConnectFunc func(ctx context.Context) error

// ConnectionWarmer повторяет подключение к недоступной базе в фоне, чтобы
// первый запрос пользователя не ждал таймаута. Завершается после первого
// успеха; неверная схема прекращает попытки.
type ConnectionWarmer struct {
	*BaseWorker
	connect  ConnectFunc
	interval time.Duration
	timeout  time.Duration
}

// NewConnectionWarmer создает воркер; timeout ограничивает одну попытку
func NewConnectionWarmer(connect ConnectFunc, interval, timeout time.Duration, logger *zap.Logger) *ConnectionWarmer {
	return &ConnectionWarmer{
		BaseWorker: NewBaseWorker("db-connection-warmer", logger),
		connect:    connect,
		interval:   interval,
		timeout:    timeout,
	}
}

// Start выполняет попытки до успеха, остановки или фатальной ошибки схемы
func (w *ConnectionWarmer) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return nil
		case <-w.StopChan():
			return nil
		case <-ticker.C:
		}

		err := w.try(ctx)
		if err == nil {
			w.Logger().Info("Database connected", zap.Int("attempt", attempt))
			return nil
		}
		if errors.Is(err, errors.ErrSchemaMismatch) {
			return err
		}
		w.Logger().Warn("Database still unreachable", zap.Int("attempt", attempt), zap.Error(err))
	}
}

func (w *ConnectionWarmer) try(ctx context.Context) error {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	return w.connect(ctx)
}
