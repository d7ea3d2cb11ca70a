// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversation transcripts to Markdown files.
package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jeranaias/lumi-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// Markdown converts a conversation transcript to Markdown.
func Markdown(messages []*model.Message) ([]byte, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("conversation has no messages")
	}

	var sb strings.Builder
	sb.WriteString("# Lumi conversation\n\n")
	sb.WriteString(fmt.Sprintf("_Exported %s_\n\n", time.Now().Format(time.RFC3339)))

	for _, msg := range messages {
		sb.WriteString(fmt.Sprintf("## %s — %s\n\n", msg.Role.DisplayName(), msg.Timestamp.Format("15:04")))
		sb.WriteString(msg.Text)
		sb.WriteString("\n\n")
		if msg.Attachment != nil {
			name := msg.Attachment.Name
			if name == "" {
				name = string(msg.Attachment.Type)
			}
			sb.WriteString(fmt.Sprintf("_Attachment: %s (%s)_\n\n", name, msg.Attachment.MimeType))
		}
	}

	return []byte(sb.String()), nil
}

// WriteMarkdown exports a transcript to a file. The file is created
// with 0600 permissions since conversations are private.
func WriteMarkdown(path string, messages []*model.Message) error {
	data, err := Markdown(messages)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// DefaultExportPath returns a timestamped transcript filename in the
// working directory.
func DefaultExportPath() string {
	return fmt.Sprintf("lumi-conversation-%s.md", time.Now().Format("2006-01-02-150405"))
}
