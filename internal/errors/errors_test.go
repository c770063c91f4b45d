package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "validation error shows bare message",
			err:      NewValidation("email", "올바른 이메일 형식이 아닙니다."),
			expected: "올바른 이메일 형식이 아닙니다.",
		},
		{
			name:     "wrapped validation error",
			err:      fmt.Errorf("signup: %w", NewValidation("password", "비밀번호는 6자 이상이어야 합니다.")),
			expected: "비밀번호는 6자 이상이어야 합니다.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("failed to load poem for day %d", 3)
	if got != "Error: failed to load poem for day 3" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestClassification(t *testing.T) {
	netErr := fmt.Errorf("poem: %w", &NetworkError{Op: "GET /poems/day/3", Status: 503, Err: errors.New("unavailable")})
	storeErr := &StorageError{Op: "set", Key: "poem_3_cache", Err: errors.New("disk full")}

	if !IsNetwork(netErr) {
		t.Error("IsNetwork() = false for wrapped NetworkError")
	}
	if !IsNetwork(ErrBackendDisabled) {
		t.Error("ErrBackendDisabled must classify as a network failure")
	}
	if IsNetwork(storeErr) {
		t.Error("IsNetwork() = true for StorageError")
	}
	if !IsStorage(storeErr) {
		t.Error("IsStorage() = false for StorageError")
	}
	if IsValidation(netErr) {
		t.Error("IsValidation() = true for NetworkError")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&NetworkError{Op: "GET /records/5", Status: 401, Err: errors.New("unauthorized")}, "GET /records/5: HTTP 401 - unauthorized"},
		{&NetworkError{Op: "GET /poems/day/1", Err: errors.New("timeout")}, "GET /poems/day/1: timeout"},
		{&StorageError{Op: "get", Key: "mood_2024-01-01", Err: errors.New("locked")}, `storage get "mood_2024-01-01": locked`},
		{&StorageError{Op: "open", Err: errors.New("missing")}, "storage open: missing"},
		{&ValidationError{Message: "모든 필드를 입력해주세요."}, "모든 필드를 입력해주세요."},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
