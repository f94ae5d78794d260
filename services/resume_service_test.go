package services

import (
	"context"
	"testing"
)

func TestResumeServiceDisabledWithoutStore(t *testing.T) {
	svc := NewResumeService(nil, nil)

	if svc.Enabled() {
		t.Error("Enabled() = true with no storage client")
	}
	if _, err := svc.DownloadURL(context.Background(), 1); err == nil {
		t.Error("DownloadURL() should fail when storage is not configured")
	}
	if _, err := svc.Upload(context.Background(), 1, nil); err == nil {
		t.Error("Upload() should fail when storage is not configured")
	}
}
