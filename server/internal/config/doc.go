// Package config loads the server-side configuration from the `server:` section
// of config.yaml (the `cli:` key is read by supplyctl and ignored here).
//
// Config fields:
//   - HTTPPort        port for the REST API, WebSocket hub and /metrics (default 8080)
//   - Auth.Mode       "apikey" or "none"
//   - Auth.KeyEnv     environment variable holding the expected API key
//   - Auth.Header     HTTP header name (default "x-api-key")
//   - Dataset.Source  JSON file or database DSN (default data/supplychain.json)
//   - Dataset.Strict  reject malformed datasets
//   - Dataset.Watch   reload a JSON source when it changes
//   - Engine.Seed     random seed, 0 seeds from the clock
//   - Cache.TTL       how long a built dashboard is reused (default 5m)
//   - Stream.Interval WebSocket push interval (default 10s)
//   - Alerts          rules and webhook targets
//
// Load(path) applies defaults before unmarshalling, then validates.
// Default() returns the defaults alone, for running without a config file.
package config
