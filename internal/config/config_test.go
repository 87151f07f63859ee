// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"code.hybscloud.com/filexfer/internal/config"
)

// writeConfig writes contents to a fresh YAML file under t.TempDir() and
// returns its path.
func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filexferd.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoad_DocumentedExample exercises Load against the literal YAML
// example documented in SPEC_FULL.md's External Interfaces section, key for
// key: bind, key_hex, chunk_size, log_level, metrics_addr.
func TestLoad_DocumentedExample(t *testing.T) {
	keyHex := strings.Repeat("ab", 32)
	path := writeConfig(t, `
bind: "0.0.0.0:1998"
key_hex: "`+keyHex+`"
chunk_size: 64512
log_level: info
metrics_addr: "127.0.0.1:9090"
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BindAddr != "0.0.0.0:1998" {
		t.Fatalf("BindAddr = %q, want %q", cfg.BindAddr, "0.0.0.0:1998")
	}
	if len(cfg.Key) != 32 {
		t.Fatalf("Key length = %d, want 32", len(cfg.Key))
	}
	if cfg.ChunkSize != 64512 {
		t.Fatalf("ChunkSize = %d, want 64512", cfg.ChunkSize)
	}
	if cfg.MetricsAddr != "127.0.0.1:9090" {
		t.Fatalf("MetricsAddr = %q, want %q", cfg.MetricsAddr, "127.0.0.1:9090")
	}
}

func TestLoad_BindDefaultsWhenOmitted(t *testing.T) {
	path := writeConfig(t, `key_hex: "`+strings.Repeat("11", 32)+`"`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BindAddr != "0.0.0.0:1998" {
		t.Fatalf("BindAddr = %q, want default %q", cfg.BindAddr, "0.0.0.0:1998")
	}
}

func TestLoad_KeyFile(t *testing.T) {
	keyHex := strings.Repeat("22", 32)
	keyPath := filepath.Join(t.TempDir(), "key.hex")
	if err := os.WriteFile(keyPath, []byte(keyHex+"\n"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}
	path := writeConfig(t, `key_file: "`+keyPath+`"`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Key) != 32 {
		t.Fatalf("Key length = %d, want 32", len(cfg.Key))
	}
}

func TestLoad_MissingKeyIsRejected(t *testing.T) {
	path := writeConfig(t, `bind: "0.0.0.0:1998"`)
	if _, err := config.Load(path); err == nil {
		t.Fatalf("Load() = nil error, want error for missing key_hex/key_file")
	}
}

func TestLoad_RejectsNonProtocolChunkSize(t *testing.T) {
	path := writeConfig(t, `
key_hex: "`+strings.Repeat("33", 32)+`"
chunk_size: 1024
`)
	if _, err := config.Load(path); err == nil {
		t.Fatalf("Load() = nil error, want error for chunk_size != 64512")
	}
}
