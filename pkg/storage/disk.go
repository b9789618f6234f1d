// Package storage saves uploaded files under namespaced keys.
//
// A key looks like "uploads/20240501103000_poster.pdf": the namespace, then a
// timestamped, sanitised copy of the client's file name.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode"

	"print-shop/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Namespaces used by the shop.
const (
	NamespaceDesigns       = "uploads"
	NamespacePaymentProofs = "bukti_pembayaran"
	NamespaceProducts      = "assets/imgProduk"
	NamespaceProfiles      = "profil_user"
)

// Disk is a blob store driver.
type Disk interface {
	// Save stores r under namespace and returns the generated key.
	Save(ctx context.Context, namespace, originalName string, r io.Reader) (string, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	URL(key string) string
}

// Open builds the driver selected in config.
func Open(ctx context.Context, config utils.StorageConfig) (Disk, error) {
	switch config.Driver {
	case "local":
		return NewLocalDisk(config.LocalRoot, config.LocalURL), nil
	case "s3":
		return NewS3Disk(ctx, config)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", config.Driver)
	}
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename keeps an ASCII, path-free version of name.
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)
	name = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, name)
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, "._")
	if name == "" {
		return "file"
	}
	return name
}

// Ext returns the lower-case extension of name without the dot.
func Ext(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

// HasAllowedExt reports whether name has a dot and one of the allowed extensions.
func HasAllowedExt(name string, allowed ...string) bool {
	if !strings.Contains(name, ".") {
		return false
	}
	ext := Ext(name)
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

func storedName(now time.Time, originalName string) string {
	return now.Format("20060102150405") + "_" + SanitizeFilename(originalName)
}

// uniqueKey picks a key under namespace that does not exist yet.
func uniqueKey(ctx context.Context, d Disk, now time.Time, namespace, originalName string) (string, error) {
	key := path.Join(namespace, storedName(now, originalName))
	exists, err := d.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return key, nil
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return path.Join(namespace, now.Format("20060102150405")+"_"+suffix+"_"+SanitizeFilename(originalName)), nil
}
