package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"neo4j": map[string]any{
			"uri":      "bolt://neo4j:7687",
			"user":     "neo4j",
			"password": "docker",
		},
		"secretKey": map[string]any{
			"access": "",
		},
		"auth": map[string]any{
			"accessTokenExpireMinutes": 30,
		},
		"cors": map[string]any{
			"allowOrigins": []any{"http://localhost:3000"},
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "NEO4J_URI", want: "neo4j.uri"},
		{envKey: "NEO4J_USER", want: "neo4j.user"},
		{envKey: "NEO4J_PASSWORD", want: "neo4j.password"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "AUTH_ACCESSTOKENEXPIREMINUTES", want: "auth.accessTokenExpireMinutes"},
		{envKey: "CORS_ALLOWORIGINS", want: "cors.allowOrigins"},
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
