// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewAttachmentFromFile_Image(t *testing.T) {
	payload := []byte("fake-png-bytes")
	path := writeTempFile(t, "photo.png", payload)

	att, err := NewAttachmentFromFile(path)
	if err != nil {
		t.Fatalf("NewAttachmentFromFile() error = %v", err)
	}
	if att.Type != AttachmentImage {
		t.Errorf("type = %q, want image", att.Type)
	}
	if att.MimeType != "image/png" {
		t.Errorf("mime = %q", att.MimeType)
	}
	if att.Name != "photo.png" {
		t.Errorf("name = %q", att.Name)
	}
	if att.Data != base64.StdEncoding.EncodeToString(payload) {
		t.Error("payload must be base64 encoded")
	}
}

func TestNewAttachmentFromFile_Audio(t *testing.T) {
	path := writeTempFile(t, "note.wav", []byte("RIFFxxxx"))
	att, err := NewAttachmentFromFile(path)
	if err != nil {
		t.Fatalf("NewAttachmentFromFile() error = %v", err)
	}
	if att.Type != AttachmentFile {
		t.Errorf("audio should classify as file attachment, got %q", att.Type)
	}
}

func TestNewAttachmentFromFile_RejectsOtherTypes(t *testing.T) {
	path := writeTempFile(t, "notes.txt", []byte("hello"))
	_, err := NewAttachmentFromFile(path)
	if !errors.Is(err, ErrUnsupportedAttachment) {
		t.Errorf("error = %v, want ErrUnsupportedAttachment", err)
	}
}

func TestNewAttachmentFromFile_Missing(t *testing.T) {
	_, err := NewAttachmentFromFile(filepath.Join(t.TempDir(), "ghost.png"))
	if err == nil {
		t.Error("missing file must error")
	}
}
