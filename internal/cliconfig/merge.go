package cliconfig

// MergeConfig merges source into target, updating source tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *Config, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources["logFormat"] = sourceType
	}
	if len(source.Fixtures) > 0 {
		target.Fixtures = append([]string(nil), source.Fixtures...)
		target.Sources["fixtures"] = sourceType
	}
	// A pointer distinguishes an explicit false from an absent value.
	if source.PrepareHeaders != nil {
		v := *source.PrepareHeaders
		target.PrepareHeaders = &v
		target.Sources["prepareHeaders"] = sourceType
	}
}
