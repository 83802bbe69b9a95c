// Package config loads flatcompose settings. Values are layered with koanf,
// each layer overriding the previous one:
//
//   - the embedded defaults
//   - the per-user file under the XDG config home
//   - the project file (flatcompose.toml, .yaml or .jsonc)
//   - FLATCOMPOSE_ environment variables
//   - overrides given as dotted keys (--set on the command line)
//   - command-line flags that were set explicitly
package config
