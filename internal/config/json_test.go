package config

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	p := writeConfigFile(t, `{
		"app": {
			"token_sign_key": "jwt_secret",
			"token_issuer": "issuer",
			"access_token_duration": "15m",
			"refresh_token_duration": "720h",
			"client_ids": ["tui"],
			"version": "2.0.0"
		},
		"server": {"http_address": "localhost:8080", "request_timeout": "30s"},
		"adapter": {"http_address": "http://cloud", "request_timeout": "4s", "client_id": "tui"},
		"storage": {
			"db": {"driver": "sqlite", "dsn": "dash.db", "database_uri": "postgres://db"},
			"blob": {"driver": "s3", "s3": {"bucket": "b", "region": "r", "path_style": true}}
		},
		"workers": {"push_debounce": "5s", "startup_delay": 1000000},
		"log": {"file": "client.log"}
	}`)

	cfg, err := parseJSON(p)
	require.NoError(t, err)

	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, 15*time.Minute, cfg.App.AccessTokenDuration)
	assert.Equal(t, 720*time.Hour, cfg.App.RefreshTokenDuration)
	assert.Equal(t, []string{"tui"}, cfg.App.ClientIDs)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "http://cloud", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 4*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "dash.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "postgres://db", cfg.Storage.DB.DatabaseURI)
	assert.True(t, cfg.Storage.Blob.S3.PathStyle)
	assert.Equal(t, 5*time.Second, cfg.Workers.PushDebounce)
	assert.Equal(t, time.Millisecond, cfg.Workers.StartupDelay)
	assert.Equal(t, "client.log", cfg.Log.File)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	_, err := parseJSON(writeConfigFile(t, `{"app": `))
	assert.Error(t, err)
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	_, err := parseJSON(writeConfigFile(t, `{"workers": {"push_debounce": "later"}}`))
	assert.Error(t, err)
}

func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1m30s"`), &d))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
}
