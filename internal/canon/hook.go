package canon

import "strings"

// HookPrefix starts every hook name.
const HookPrefix = "on_"

// HookName derives the target-neutral hook name of a command path: the
// prefix followed by the lower-cased path segments joined with underscores,
// dashes folded to underscores. ["config", "get-all"] yields
// "on_config_get_all".
//
// Generated programs dispatch to user code by this exact string, so the
// derivation must not change.
func HookName(path []string) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strings.ReplaceAll(strings.ToLower(p), "-", "_")
	}
	return HookPrefix + strings.Join(parts, "_")
}
