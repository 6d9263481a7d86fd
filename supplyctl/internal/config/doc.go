// Package config loads the supplyctl configuration.
//
// The CLI reads the `cli:` section of a YAML file (the server reads the
// `server:` section of the same schema, so one config.yaml can serve both).
// Without --config, ~/.supplyctl.yaml is used when it exists and built-in
// defaults otherwise.
//
//   - Config{CLI} is the config tree parsed from YAML
//   - CLIConfig holds dataset, strict, seed, output and server
//   - ServerConn holds url, key_env, header and timeout; Key() resolves the
//     API key from the environment
//
// Load(path) reads the YAML file, applies defaults (bundled sample dataset,
// table output, 10s server timeout), then validates enums.
package config
