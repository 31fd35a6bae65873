package config

import (
	"os"
	"strconv"
	"strings"
)

// envOr parses the variable named key, falling back to defaultValue when it is
// unset, empty or unparsable.
func envOr[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	parsed, err := parse(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetEnv returns the variable named key or defaultValue. Used for CLI flag defaults.
func GetEnv(key, defaultValue string) string {
	return envOr(key, defaultValue, func(s string) (string, error) { return s, nil })
}

// GetEnvAsBool reads key with strconv.ParseBool
func GetEnvAsBool(key string, defaultValue bool) bool {
	return envOr(key, defaultValue, strconv.ParseBool)
}

// GetEnvAsInt reads key as a base-10 integer
func GetEnvAsInt(key string, defaultValue int) int {
	return envOr(key, defaultValue, strconv.Atoi)
}

// GetEnvAsSlice splits key on sep, trimming items and dropping empty ones
func GetEnvAsSlice(key, sep string, defaultValue []string) []string {
	return envOr(key, defaultValue, func(s string) ([]string, error) {
		var out []string
		for _, item := range strings.Split(s, sep) {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out, nil
	})
}
