package metrics

import "go.uber.org/fx"

// Module provides process-wide metrics backed by the default registry.
var Module = fx.Provide(New)
