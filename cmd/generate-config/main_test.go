package main

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/debemdeboas/mdblog/internal/config"
	"gopkg.in/yaml.v3"
)

func TestGenerate(t *testing.T) {
	out, err := generate()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte(header)) {
		t.Error("Expected the header comment first")
	}

	var cfg config.Config
	if err := yaml.Unmarshal(out, &cfg); err != nil {
		t.Fatalf("Generated YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(&cfg, config.Default()) {
		t.Errorf("Expected generated config to match the defaults, got %+v", cfg)
	}
}
