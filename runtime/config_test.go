package runtime

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	want := DefaultConfig()
	if cfg != want {
		t.Errorf("LoadConfig => %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadConfigPartialOverridesKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("prompt: \"calc> \"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Prompt != "calc> " {
		t.Errorf("prompt => %q, want %q", cfg.Prompt, "calc> ")
	}
	if want := DefaultConfig().RCFile; cfg.RCFile != want {
		t.Errorf("rc_file => %q, want default %q", cfg.RCFile, want)
	}
}

func TestLoadConfigFullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "rc_file: /tmp/rc\nhistory_file: /tmp/hist\nprompt: \"> \"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	want := Config{
		RCFile:      "/tmp/rc",
		HistoryFile: "/tmp/hist",
		Prompt:      "> ",
	}
	if cfg != want {
		t.Errorf("LoadConfig => %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("rc_file: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig(\"\") => %+v, want defaults", cfg)
	}
}
