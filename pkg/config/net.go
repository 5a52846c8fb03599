package config

// NetConfig contains tuning options for the round-trip probes protocol
// plugins run during Init.
type NetConfig struct {
	DialTimeoutMS        int `mapstructure:"dial_timeout_ms"`
	ProbeCacheTTLSeconds int `mapstructure:"probe_cache_ttl_seconds"`
}

