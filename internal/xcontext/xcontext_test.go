package xcontext

import (
	"context"
	"testing"
)

func TestUserID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if _, ok := GetUserID(ctx); ok {
		t.Fatal("GetUserID(empty) ok = true, want false")
	}
	if _, ok := GetUserID(SetUserID(ctx, "")); ok {
		t.Fatal("GetUserID(blank) ok = true, want false")
	}

	id, ok := GetUserID(SetUserID(ctx, "0b6f"))
	if !ok || id != "0b6f" {
		t.Errorf("GetUserID() = %q, %v, want 0b6f, true", id, ok)
	}
}

func TestShutdownInProgress(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if IsShutdownInProgress(ctx) {
		t.Error("IsShutdownInProgress(empty) = true, want false")
	}
	if !IsShutdownInProgress(SetShutdownInProgress(ctx, true)) {
		t.Error("IsShutdownInProgress(set) = false, want true")
	}
}
