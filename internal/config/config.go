// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads the runtime's process-bootstrap settings: bind
// address, shared AEAD key, chunk size, log level, and the metrics listen
// address. None of this is part of the protocol core; it is the thin
// wrapper around it.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"code.hybscloud.com/filexfer/wire"
)

// Config is the fully resolved, validated process configuration.
type Config struct {
	BindAddr     string
	Key          []byte
	ChunkSize    int
	LogLevel     logrus.Level
	MetricsAddr  string
}

// Load reads path (any format viper supports: YAML, TOML, JSON, env) and
// returns a validated Config. Defaults match the reference deployment:
// bind 0.0.0.0:1998, chunk size 64512.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("bind", "0.0.0.0:1998")
	v.SetDefault("chunk_size", wire.FILEChunkSize)
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_addr", "")
	v.SetEnvPrefix("FILEXFER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	key, err := resolveKey(v)
	if err != nil {
		return Config{}, err
	}

	chunkSize := v.GetInt("chunk_size")
	if chunkSize != wire.FILEChunkSize {
		return Config{}, fmt.Errorf("config: chunk_size must be %d for protocol compatibility, got %d", wire.FILEChunkSize, chunkSize)
	}

	level, err := logrus.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return Config{}, fmt.Errorf("config: log_level: %w", err)
	}

	return Config{
		BindAddr:    v.GetString("bind"),
		Key:         key,
		ChunkSize:   chunkSize,
		LogLevel:    level,
		MetricsAddr: v.GetString("metrics_addr"),
	}, nil
}

// resolveKey accepts either a hex-encoded 32-byte key directly in the
// config (key_hex) or a path to a file holding the same hex text
// (key_file), matching how secrets are usually kept out of
// version-controlled config files.
func resolveKey(v *viper.Viper) ([]byte, error) {
	if h := v.GetString("key_hex"); h != "" {
		return decodeKeyHex(h)
	}
	if path := v.GetString("key_file"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read key_file: %w", err)
		}
		return decodeKeyHex(strings.TrimSpace(string(b)))
	}
	return nil, fmt.Errorf("config: one of key_hex or key_file is required")
}

func decodeKeyHex(h string) ([]byte, error) {
	key, err := hex.DecodeString(h)
	if err != nil {
		return nil, fmt.Errorf("config: shared key is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("config: shared key must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}
