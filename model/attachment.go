package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

const (
	AttachmentKindFile  = "file"
	AttachmentKindImage = "image"
	AttachmentKindAudio = "audio"
)

// Attachment is a file staged for the current outgoing turn. It is
// never persisted server-side; it exists only until the turn is sent.
type Attachment struct {
	ID      string
	Name    string
	Size    int64
	Kind    string
	Payload []byte
}

// LoadAttachment reads a file from disk and stages it, sniffing the
// kind from the payload bytes.
func LoadAttachment(path string) (Attachment, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to read attachment: %w", err)
	}

	return Attachment{
		ID:      uuid.New().String(),
		Name:    filepath.Base(path),
		Size:    int64(len(payload)),
		Kind:    DetectAttachmentKind(payload),
		Payload: payload,
	}, nil
}

// DetectAttachmentKind classifies payload bytes as image, audio, or
// plain file. Unknown content is a plain file.
func DetectAttachmentKind(payload []byte) string {
	kind, err := filetype.Match(payload)
	if err != nil || kind == filetype.Unknown {
		return AttachmentKindFile
	}
	switch kind.MIME.Type {
	case "image":
		return AttachmentKindImage
	case "audio":
		return AttachmentKindAudio
	default:
		return AttachmentKindFile
	}
}

// FormatSize renders a byte count for the attachments bar.
func (a Attachment) FormatSize() string {
	return humanize.IBytes(uint64(a.Size))
}
