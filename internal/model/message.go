// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleModel:
		return "Lumi"
	default:
		return string(r)
	}
}

// =============================================================================
// ATTACHMENT TYPE
// =============================================================================

// AttachmentType classifies an attachment for display purposes.
type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentFile  AttachmentType = "file"
)

// Attachment is a single binary payload attached to one outgoing turn.
// It is constructed from a user-selected file and cleared after send.
type Attachment struct {
	Type     AttachmentType `json:"type"`
	MimeType string         `json:"mimeType"`
	Data     string         `json:"data"` // Base64-encoded payload
	Name     string         `json:"name,omitempty"`
}

// MaxAttachmentSize is the maximum file size accepted for attachments.
const MaxAttachmentSize = 8 * 1024 * 1024 // 8MB

// ErrUnsupportedAttachment is returned for files that are neither image
// nor audio class.
var ErrUnsupportedAttachment = fmt.Errorf("unsupported attachment type (image and audio files only)")

// NewAttachmentFromFile reads a file from disk and converts it into an
// Attachment. Only image and audio MIME classes are accepted.
func NewAttachmentFromFile(path string) (*Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxAttachmentSize {
		return nil, fmt.Errorf("attachment too large (%d bytes, max %d)", info.Size(), MaxAttachmentSize)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	if !strings.HasPrefix(mimeType, "image/") && !strings.HasPrefix(mimeType, "audio/") {
		return nil, ErrUnsupportedAttachment
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	attType := AttachmentFile
	if strings.HasPrefix(mimeType, "image/") {
		attType = AttachmentImage
	}

	return &Attachment{
		Type:     attType,
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
		Name:     filepath.Base(path),
	}, nil
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
// Messages are immutable once created: appended only, never edited.
type Message struct {
	ID         string      `json:"id"`
	Role       Role        `json:"role"`
	Text       string      `json:"text"`
	Timestamp  time.Time   `json:"timestamp"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, text string) *Message {
	return &Message{
		ID:        uuid.New().String(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message with an optional attachment.
func NewUserMessage(text string, att *Attachment) *Message {
	msg := NewMessage(RoleUser, text)
	msg.Attachment = att
	return msg
}

// NewModelMessage creates a new model-role message.
func NewModelMessage(text string) *Message {
	return NewMessage(RoleModel, text)
}
