package config

import "go.uber.org/fx"

// Module provides the process configuration, read once from flags and the environment.
var Module = fx.Provide(Load)
