package upload_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jobport/jobport/internal/blob"
	"github.com/jobport/jobport/internal/clock"
	"github.com/jobport/jobport/internal/upload"
)

func newFakeClock() *clock.Fake {
	return clock.NewFake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

func pdfFile(size int) upload.File {
	return upload.File{
		Name:        "resume.pdf",
		ContentType: "application/pdf",
		Data:        bytes.Repeat([]byte{0x25}, size),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		file    upload.File
		wantErr error
	}{
		{
			name:    "ValidPDF",
			file:    pdfFile(1024 * 1024),
			wantErr: nil,
		},
		{
			name: "ValidLegacyWord",
			file: upload.File{Name: "resume.doc", ContentType: "application/msword", Data: []byte("doc")},
		},
		{
			name: "ValidOOXMLWord",
			file: upload.File{
				Name:        "resume.docx",
				ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
				Data:        []byte("docx"),
			},
		},
		{
			name:    "ExecutableRejected",
			file:    upload.File{Name: "resume.exe", ContentType: "application/x-msdownload", Data: bytes.Repeat([]byte{1}, 1024*1024)},
			wantErr: upload.ErrInvalidFileType,
		},
		{
			name:    "OversizedPDFRejected",
			file:    pdfFile(6 * 1024 * 1024),
			wantErr: upload.ErrFileTooLarge,
		},
		{
			name:    "ExactlyAtLimitAccepted",
			file:    pdfFile(upload.MaxFileSize),
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := upload.Validate(tt.file)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUploadSuccess(t *testing.T) {
	clk := newFakeClock()
	store := blob.NewMemoryStore("/blobs")
	sim := upload.New(store, clk, upload.DefaultConfig(), nil)

	started := clk.Now()
	var reported []int
	resume, err := sim.Upload(context.Background(), pdfFile(1024*1024), func(pct int) {
		reported = append(reported, pct)
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	want := []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	if len(reported) != len(want) {
		t.Fatalf("progress ticks = %v, want %v", reported, want)
	}
	for i := range want {
		if reported[i] != want[i] {
			t.Fatalf("progress ticks = %v, want %v", reported, want)
		}
	}

	if resume.ID == "" || !strings.HasPrefix(resume.ID, "res_") {
		t.Fatalf("bad resume id %q", resume.ID)
	}
	if resume.FileName != "resume.pdf" {
		t.Fatalf("fileName = %q", resume.FileName)
	}
	if !strings.HasPrefix(resume.FileURL, "/blobs/") {
		t.Fatalf("fileUrl = %q", resume.FileURL)
	}
	if !resume.UploadedAt.After(started) {
		t.Fatalf("uploadedAt %v not after start %v", resume.UploadedAt, started)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 stored blob, got %d", store.Len())
	}
}

func TestUploadRejectsBeforeAnyTransfer(t *testing.T) {
	clk := newFakeClock()
	store := blob.NewMemoryStore("/blobs")
	sim := upload.New(store, clk, upload.DefaultConfig(), nil)

	_, err := sim.Upload(context.Background(), pdfFile(6*1024*1024), nil)
	if !errors.Is(err, upload.ErrFileTooLarge) {
		t.Fatalf("got %v, want ErrFileTooLarge", err)
	}
	if len(clk.Waits()) != 0 {
		t.Fatalf("validation must run before any timer, saw waits %v", clk.Waits())
	}
	if store.Len() != 0 {
		t.Fatalf("no bytes should be stored on rejection")
	}
}

func TestUploadCancelled(t *testing.T) {
	clk := newFakeClock()
	store := blob.NewMemoryStore("/blobs")
	sim := upload.New(store, clk, upload.DefaultConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resume, err := sim.Upload(ctx, pdfFile(1024), nil)
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
	if resume != nil {
		t.Fatalf("cancelled upload must never yield a resume, got %+v", resume)
	}
	if store.Len() != 0 {
		t.Fatalf("cancelled upload must not store bytes")
	}
}
