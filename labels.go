package filemagic

import (
	"mime"
	"strings"

	"github.com/gobeaver/filemagic/magic"
)

// Label categories returned by Category
const (
	CategoryImage      = "image"
	CategoryAudio      = "audio"
	CategoryVideo      = "video"
	CategoryText       = "text"
	CategoryFont       = "font"
	CategoryArchive    = "archive"
	CategoryDocument   = "document"
	CategoryExecutable = "executable"
	CategoryOther      = "other"
)

// Preferred file extension for built-in labels
var labelToExtension = map[string]string{
	magic.LabelJPEG:     ".jpg",
	magic.LabelPNG:      ".png",
	magic.LabelBMP:      ".bmp",
	magic.LabelGIF:      ".gif",
	magic.LabelIcon:     ".ico",
	magic.LabelSVG:      ".svg",
	magic.LabelTIFF:     ".tiff",
	magic.LabelWebP:     ".webp",
	magic.LabelPDF:      ".pdf",
	magic.LabelZip:      ".zip",
	magic.LabelRar:      ".rar",
	magic.LabelSevenZip: ".7z",
	magic.LabelGzip:     ".gz",
	magic.LabelExe:      ".exe",
	magic.LabelMP3:      ".mp3",
	magic.LabelWAV:      ".wav",
	magic.LabelMP4:      ".mp4",
	magic.LabelMOV:      ".mov",
	magic.LabelAVI:      ".avi",
	magic.LabelWebM:     ".webm",
	magic.LabelFLV:      ".flv",
	magic.LabelM4V:      ".m4v",
	magic.Fallback:      ".bin",
}

var executableLabels = map[string]bool{
	magic.LabelExe:                true,
	"application/x-msdos-program": true,
	"application/x-executable":    true,
	"application/x-mach-binary":   true,
	"application/x-sharedlib":     true,
	"application/x-dosexec":       true,
}

// IsExecutable returns true if the label indicates an executable
func IsExecutable(label string) bool {
	return executableLabels[baseLabel(label)]
}

// IsFallback returns true if the label is the generic binary fallback
func IsFallback(label string) bool {
	return baseLabel(label) == magic.Fallback
}

// Category returns a coarse category for a label
func Category(label string) string {
	l := baseLabel(label)
	switch {
	case IsExecutable(l):
		return CategoryExecutable
	case strings.HasPrefix(l, "image/"):
		return CategoryImage
	case strings.HasPrefix(l, "video/"):
		return CategoryVideo
	case strings.HasPrefix(l, "audio/"):
		return CategoryAudio
	case strings.HasPrefix(l, "text/"):
		return CategoryText
	case strings.HasPrefix(l, "font/"):
		return CategoryFont
	case strings.Contains(l, "zip") || strings.Contains(l, "rar") ||
		strings.Contains(l, "7z") || strings.Contains(l, "tar") ||
		strings.Contains(l, "bzip"):
		return CategoryArchive
	case l == magic.LabelPDF || strings.Contains(l, "document") ||
		strings.Contains(l, "msword"):
		return CategoryDocument
	default:
		return CategoryOther
	}
}

// ExtensionFor returns a suitable file extension for a label
func ExtensionFor(label string) string {
	l := baseLabel(label)
	if ext, ok := labelToExtension[l]; ok {
		return ext
	}

	// For unknown labels, try the mime package
	exts, err := mime.ExtensionsByType(l)
	if err == nil && len(exts) > 0 {
		return exts[0]
	}

	return ".bin"
}

// baseLabel strips parameters and normalizes case
func baseLabel(label string) string {
	if idx := strings.Index(label, ";"); idx != -1 {
		label = label[:idx]
	}
	return strings.ToLower(strings.TrimSpace(label))
}
