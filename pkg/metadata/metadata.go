// Package metadata signs generated reports and verifies them later.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// TagStart is the start of the metadata block.
	TagStart = "<!-- METADATA_START"
	// TagEnd is the end of the metadata block.
	TagEnd = "METADATA_END -->"
)

// Metadata verification errors.
var (
	ErrNoMetadataBlock = errors.New("no metadata block found")
	ErrNoHashFound     = errors.New("no hash found in metadata")
	ErrHashMismatch    = errors.New("hash mismatch")
)

// Metadata describes where a report came from and what it hashed to.
type Metadata struct {
	LastModify time.Time
	Dataset    string
	Rows       int
	Hash       string
}

// metadataRegex matches the entire metadata block including tags.
var metadataRegex = regexp.MustCompile(`(?s)<!--\s*METADATA_START\s*\n(.*?)\n\s*METADATA_END\s*-->`)

// Extract removes the metadata block from content and returns both the
// metadata and the cleaned content. The cleaned content is what gets hashed.
func Extract(content string) (*Metadata, string) {
	match := metadataRegex.FindStringSubmatch(content)
	cleanContent := metadataRegex.ReplaceAllString(content, "")
	cleanContent = strings.TrimRight(cleanContent, "\n")

	if len(match) < 2 {
		return nil, cleanContent
	}

	meta := &Metadata{}

	for line := range strings.SplitSeq(match[1], "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		switch key {
		case "LAST_MODIFY":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.LastModify = t
			}
		case "DATASET":
			meta.Dataset = val
		case "ROWS":
			if n, err := strconv.Atoi(val); err == nil {
				meta.Rows = n
			}
		case "HASH":
			meta.Hash = val
		}
	}

	return meta, cleanContent
}

// CalculateHash computes the SHA-256 hash of the content (excluding metadata).
func CalculateHash(content string) string {
	_, clean := Extract(content)
	hash := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(hash[:])
}

// Sign replaces any metadata block with one carrying a fresh hash and
// timestamp. Dataset and Rows are taken from meta when given.
func Sign(content string, meta *Metadata) string {
	_, clean := Extract(content)

	hash := CalculateHash(clean)
	now := time.Now().UTC().Format(time.RFC3339)

	var sb strings.Builder

	sb.WriteString(clean)
	sb.WriteString("\n\n")
	sb.WriteString(TagStart)
	sb.WriteString("\n")

	if meta != nil {
		if meta.Dataset != "" {
			fmt.Fprintf(&sb, "DATASET: %s\n", meta.Dataset)
		}

		fmt.Fprintf(&sb, "ROWS: %d\n", meta.Rows)
	}

	fmt.Fprintf(&sb, "LAST_MODIFY: %s\nHASH: %s\n%s", now, hash, TagEnd)

	return sb.String()
}

// Verify checks if the content matches the hash in its metadata.
func Verify(content string) (*Metadata, error) {
	meta, clean := Extract(content)
	if meta == nil {
		return nil, ErrNoMetadataBlock
	}

	if meta.Hash == "" {
		return meta, ErrNoHashFound
	}

	calculated := CalculateHash(clean)
	if calculated != meta.Hash {
		return meta, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, meta.Hash, calculated)
	}

	return meta, nil
}
