package msg

import (
	"errors"
	"testing"
	"time"
)

func TestShowToast(t *testing.T) {
	got, ok := ShowToast("Note created!", time.Second)().(ToastMsg)
	if !ok {
		t.Fatal("ShowToast should produce a ToastMsg")
	}
	if got.Message != "Note created!" || got.Duration != time.Second || got.IsError {
		t.Errorf("got %+v", got)
	}
}

func TestShowError(t *testing.T) {
	got := ShowError("Save failed", errors.New("disk full"), 3*time.Second)().(ToastMsg)
	if got.Message != "Save failed: disk full" {
		t.Errorf("got message %q", got.Message)
	}
	if !got.IsError {
		t.Error("error toast should be marked IsError")
	}
}
