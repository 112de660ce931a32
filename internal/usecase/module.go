package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/designstudio/internal/metrics"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewUserUseCase,
	NewTariffUseCase,
	NewOrderUseCase,
	func(m *metrics.Metrics) OrderRecorder { return m },
)
