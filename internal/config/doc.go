// Package config holds runtime configuration for patentprobe.
//
// Configuration is populated from CLI flags and passed through the
// application via dependency injection rather than global state. Default
// values live here as documented constants so every package agrees on
// them.
package config
