package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	// Keep the developer's own config out of the tests.
	t.Setenv("PIXCODEC_CONFIG", "")
	t.Setenv("PIXCODEC_LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	err = run(&cliEnv{stdout: &out, stderr: &errOut}, args)
	return out.String(), errOut.String(), err
}

func decodeJSON(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, s)
	}
	return m
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantUsage bool
	}{
		{"no args", nil, true},
		{"unknown command", []string{"frobnicate"}, true},
		{"help", []string{"--help"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, tt.args...)
			var ue *usageError
			if got := errors.As(err, &ue); got != tt.wantUsage {
				t.Errorf("usage error: got %v (%v), want %v", got, err, tt.wantUsage)
			}
			if !strings.Contains(stdout+stderr, "Commands:") {
				t.Error("usage text should list commands")
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	stdout, _, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "pixcodec ") {
		t.Errorf("unexpected version output %q", stdout)
	}
}

func TestEncodeDecode_Static(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "out.png")

	stdout, _, err := runCLI(t, "encode", "--text", "cli payload", "-o", img)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	result := decodeJSON(t, stdout)
	if result["mode"] != "static" || result["output"] != img {
		t.Errorf("encode result: %v", result)
	}

	stdout, _, err = runCLI(t, "decode", img)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if stdout != "cli payload" {
		t.Errorf("decoded %q, want %q", stdout, "cli payload")
	}
}

func TestEncodeDecode_HiddenFiles(t *testing.T) {
	dir := t.TempDir()
	carrier := filepath.Join(dir, "carrier.png")
	in := filepath.Join(dir, "payload.bin")
	img := filepath.Join(dir, "hidden.png")
	out := filepath.Join(dir, "recovered.bin")
	payload := []byte("binary\x00\xFFdata")
	if err := os.WriteFile(in, payload, 0644); err != nil {
		t.Fatalf("failed to write payload: %v", err)
	}

	if _, _, err := runCLI(t, "carrier", "-o", carrier, "--width", "20", "--height", "20"); err != nil {
		t.Fatalf("carrier failed: %v", err)
	}
	if _, _, err := runCLI(t, "encode", "-i", in, "-o", img, "-m", "hidden", "-d", "6", "-c", carrier); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if _, stderr, err := runCLI(t, "decode", img, "-o", out); err != nil {
		t.Fatalf("decode failed: %v", err)
	} else if !strings.Contains(stderr, "wrote 12 bytes") {
		t.Errorf("unexpected decode message %q", stderr)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read recovered payload: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("recovered %q, want %q", got, payload)
	}
}

func TestEncode_UsageErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"missing out", []string{"encode", "--text", "x"}},
		{"missing payload", []string{"encode", "-o", filepath.Join(dir, "a.png")}},
		{"both payloads", []string{"encode", "-t", "x", "-i", "f", "-o", filepath.Join(dir, "b.png")}},
		{"bad mode", []string{"encode", "-t", "x", "-o", filepath.Join(dir, "c.png"), "-m", "loud"}},
		{"unknown flag", []string{"encode", "--bogus"}},
		{"decode without image", []string{"decode"}},
		{"capacity without bytes", []string{"capacity"}},
		{"carrier without out", []string{"carrier"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			var ue *usageError
			if !errors.As(err, &ue) {
				t.Errorf("expected a usage error, got %v", err)
			}
		})
	}
}

func TestEncode_EmptyText(t *testing.T) {
	img := filepath.Join(t.TempDir(), "empty.png")
	if _, _, err := runCLI(t, "encode", "--text", "", "-o", img); err != nil {
		t.Fatalf("encoding an empty payload failed: %v", err)
	}
	stdout, _, err := runCLI(t, "decode", img)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("decoded %q, want empty", stdout)
	}
}

func TestEncode_StaticRejectsHiddenDepth(t *testing.T) {
	img := filepath.Join(t.TempDir(), "out.png")
	_, _, err := runCLI(t, "encode", "-t", "x", "-o", img, "-m", "static", "-d", "4")
	if err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Fatalf("expected a depth error, got %v", err)
	}
	if _, statErr := os.Stat(img); !os.IsNotExist(statErr) {
		t.Error("no output should be written on failure")
	}
}

func TestCarrier_Blur(t *testing.T) {
	for _, blur := range []string{"2", "3", "10"} {
		out := filepath.Join(t.TempDir(), "carrier.png")
		if _, _, err := runCLI(t, "carrier", "-o", out, "--width", "5", "--height", "3", "--blur", blur); err != nil {
			t.Errorf("carrier --blur %s failed: %v", blur, err)
		}
	}
}

func TestInspectAndCapacity(t *testing.T) {
	img := filepath.Join(t.TempDir(), "out.png")
	if _, _, err := runCLI(t, "encode", "-t", "inspect", "-o", img); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	stdout, _, err := runCLI(t, "inspect", img)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	ins := decodeJSON(t, stdout)
	header, ok := ins["header"].(map[string]interface{})
	if !ok || header["mode"] != "static" {
		t.Errorf("inspect header: %v", ins["header"])
	}

	stdout, _, err = runCLI(t, "capacity", "-b", "100", "-m", "hidden", "-d", "2", "-c", img)
	if err != nil {
		t.Fatalf("capacity failed: %v", err)
	}
	plan := decodeJSON(t, stdout)
	if plan["fits"] != false {
		t.Errorf("100 bytes should not fit in a tiny carrier: %v", plan)
	}
}

func TestDecode_MissingFile(t *testing.T) {
	_, _, err := runCLI(t, "decode", "/nonexistent/image.png")
	if err == nil {
		t.Fatal("expected an error")
	}
	var ue *usageError
	if errors.As(err, &ue) {
		t.Error("a missing file is not a usage error")
	}
}
