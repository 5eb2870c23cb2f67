package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"auth": map[string]any{
			"sessionCookieName":      "_session_id",
			"sessionDurationSeconds": 0,
			"excludedPaths":          []any{},
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "AUTH_SESSIONCOOKIENAME", want: "auth.sessionCookieName"},
		{envKey: "AUTH_SESSIONDURATIONSECONDS", want: "auth.sessionDurationSeconds"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestAuthConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AuthConfig
		wantErr string
	}{
		{
			name: "basic strategy needs no cookie",
			cfg:  AuthConfig{Strategy: StrategyBasic},
		},
		{
			name: "session strategy with cookie and store",
			cfg: AuthConfig{
				Strategy:          StrategySession,
				SessionStore:      StoreMemory,
				SessionCookieName: "_session_id",
			},
		},
		{
			name:    "unknown strategy",
			cfg:     AuthConfig{Strategy: "oauth"},
			wantErr: "unknown auth strategy",
		},
		{
			name: "session strategy without cookie name",
			cfg: AuthConfig{
				Strategy:     StrategySession,
				SessionStore: StoreMemory,
			},
			wantErr: "sessionCookieName must be provided",
		},
		{
			name: "unknown session store",
			cfg: AuthConfig{
				Strategy:          StrategySession,
				SessionStore:      "cassandra",
				SessionCookieName: "_session_id",
			},
			wantErr: "unknown session store",
		},
		{
			name: "negative session duration",
			cfg: AuthConfig{
				Strategy:               StrategyBasic,
				SessionDurationSeconds: -1,
			},
			wantErr: "must be >= 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
