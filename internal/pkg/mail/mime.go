package mail

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// ErrAttachmentRead is returned when an attachment file cannot be loaded.
var ErrAttachmentRead = errors.New("mail: read attachment")

type attachmentFile struct {
	name        string
	contentType string
	data        []byte
}

func loadAttachments(atts []Attachment) ([]attachmentFile, error) {
	files := make([]attachmentFile, 0, len(atts))
	for _, a := range atts {
		data, err := os.ReadFile(a.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrAttachmentRead, a.Path, err)
		}

		ct := a.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}

		files = append(files, attachmentFile{name: filepath.Base(a.Path), contentType: ct, data: data})
	}
	return files, nil
}

// buildRaw renders msg as an RFC 5322 message. Bcc is never written to headers.
func buildRaw(msg Message, from string, boundary func() string) ([]byte, error) {
	files, err := loadAttachments(msg.Attachments)
	if err != nil {
		return nil, err
	}

	body, contentType := buildBody(msg, boundary)
	if len(files) > 0 {
		body, contentType = wrapMixed(body, contentType, files, boundary())
	}

	var headers []string
	headers = append(headers, fmt.Sprintf("From: %s", formatAddress(from)))
	headers = append(headers, fmt.Sprintf("To: %s", strings.Join(formatAddresses(msg.To), ", ")))
	if len(msg.Cc) > 0 {
		headers = append(headers, fmt.Sprintf("Cc: %s", strings.Join(formatAddresses(msg.Cc), ", ")))
	}
	headers = append(headers, fmt.Sprintf("Subject: %s", mime.QEncoding.Encode("utf-8", msg.Subject)))
	headers = append(headers, "MIME-Version: 1.0")
	headers = append(headers, fmt.Sprintf("Content-Type: %s", contentType))

	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body), nil
}

func buildBody(msg Message, boundary func() string) (body string, contentType string) {
	if msg.HTMLBody != "" && msg.TextBody != "" {
		b := boundary()
		var sb strings.Builder
		sb.WriteString("This is a multipart message in MIME format.\r\n")
		fmt.Fprintf(&sb, "--%s\r\n", b)
		sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		sb.WriteString("\r\n")
		sb.WriteString(msg.TextBody)
		sb.WriteString("\r\n")
		fmt.Fprintf(&sb, "--%s\r\n", b)
		sb.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		sb.WriteString("\r\n")
		sb.WriteString(msg.HTMLBody)
		sb.WriteString("\r\n")
		fmt.Fprintf(&sb, "--%s--", b)
		return sb.String(), fmt.Sprintf("multipart/alternative; boundary=%s", b)
	}

	if msg.HTMLBody != "" {
		return msg.HTMLBody, "text/html; charset=UTF-8"
	}

	return msg.TextBody, "text/plain; charset=UTF-8"
}

func wrapMixed(body, contentType string, files []attachmentFile, b string) (string, string) {
	var sb strings.Builder
	sb.WriteString("This is a multipart message in MIME format.\r\n")
	fmt.Fprintf(&sb, "--%s\r\n", b)
	fmt.Fprintf(&sb, "Content-Type: %s\r\n", contentType)
	sb.WriteString("\r\n")
	sb.WriteString(body)
	sb.WriteString("\r\n")

	for _, f := range files {
		fmt.Fprintf(&sb, "--%s\r\n", b)
		fmt.Fprintf(&sb, "Content-Type: %s; name=%q\r\n", f.contentType, f.name)
		sb.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&sb, "Content-Disposition: attachment; filename=%q\r\n", f.name)
		sb.WriteString("\r\n")
		writeBase64Lines(&sb, f.data)
	}

	fmt.Fprintf(&sb, "--%s--", b)
	return sb.String(), fmt.Sprintf("multipart/mixed; boundary=%s", b)
}

// writeBase64Lines wraps encoded data at 76 characters per RFC 2045.
func writeBase64Lines(sb *strings.Builder, data []byte) {
	enc := base64.StdEncoding.EncodeToString(data)
	for len(enc) > 76 {
		sb.WriteString(enc[:76])
		sb.WriteString("\r\n")
		enc = enc[76:]
	}
	sb.WriteString(enc)
	sb.WriteString("\r\n")
}

func multipartBoundary() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "mailinglist-boundary-fallback"
	}
	return "mailinglist-boundary-" + fmt.Sprintf("%x", b[:])
}
