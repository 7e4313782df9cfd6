package config

import "go.uber.org/zap"

// NewLogger builds the process logger: JSON production output in production,
// the colored development encoder otherwise, and a no-op logger under test.
func (c *Config) NewLogger() (*zap.Logger, error) {
	switch c.AppEnv {
	case EnvProduction:
		return zap.NewProduction()
	case EnvTest:
		return zap.NewNop(), nil
	default:
		return zap.NewDevelopment()
	}
}
