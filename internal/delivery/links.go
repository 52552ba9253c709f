package delivery

import (
	"regexp"

	"github.com/trivima/assetstore/internal/domain/model"
)

const driveDownloadURL = "https://drive.google.com/uc?export=download&id="

var (
	drivePathID  = regexp.MustCompile(`/file/d/([^/?#]+)`)
	driveQueryID = regexp.MustCompile(`[?&]id=([^&#]+)`)
)

// DownloadURL returns a direct download link for an asset reference.
// Drive share links are rewritten to the export form; anything else,
// including a drive link of unknown shape, is returned unchanged.
func DownloadURL(ref string, kind model.AssetType) string {
	if kind != model.AssetTypeDriveLink || ref == "" {
		return ref
	}
	if m := drivePathID.FindStringSubmatch(ref); m != nil {
		return driveDownloadURL + m[1]
	}
	if m := driveQueryID.FindStringSubmatch(ref); m != nil {
		return driveDownloadURL + m[1]
	}
	return ref
}
