package dealscan

import "context"

// Setting keys. Credentials and accumulated usage counters are persisted
// behind an opaque key-value interface; format and storage mechanism are
// implementation details.
const (
	SettingGeminiKey     = "gemini_key"
	SettingSerpKey       = "serp_key"
	SettingAnalysisCount = "analysis_count"
	SettingPromptTokens  = "prompt_tokens"
)

// SettingsService is the opaque key-value store for credentials and usage
// counters.
type SettingsService interface {
	// Get returns the value for key, or ENOTFOUND.
	Get(ctx context.Context, key string) (string, error)

	// Set stores the value for key, replacing any existing value.
	Set(ctx context.Context, key, value string) error

	// Increment adds delta to the integer counter stored at key and
	// returns the new value. A missing counter starts at zero.
	Increment(ctx context.Context, key string, delta int64) (int64, error)
}
