package stacktrace

import "testing"

func TestInternalPaths(t *testing.T) {

	// Arrange
	stack := []byte(`goroutine 1 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/otpbridge/internal/pkg/goroutine.(*Manager).run.func1()
	/app/internal/pkg/goroutine/goroutine.go:91 +0x65
panic({0x1, 0x2})
	/usr/local/go/src/runtime/panic.go:792 +0x132
github.com/shandysiswandi/otpbridge/internal/pairing/usecase.(*Usecase).IssueOTP(...)
	/app/internal/pairing/usecase/issue_otp.go:40
`)

	// Act
	got := InternalPaths(stack)

	// Assert
	want := []string{
		"internal/pkg/goroutine/goroutine.go:91",
		"internal/pairing/usecase/issue_otp.go:40",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d frames, got %#v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d = %q, want %q", i, got[i], want[i])
		}
	}
}
