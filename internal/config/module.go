package config

import "go.uber.org/fx"

// Module provides the storefront configuration loaded from file, env and flags.
var Module = fx.Provide(Load)
