package router

import "go.uber.org/fx"

// Module provides the store's gin engine.
var Module = fx.Provide(Setup)
