package app

import (
	"path/filepath"
	"strings"
)

// intermediateAudioExts are container extensions the extractor may
// predict for an audio download before the transcoder rewrites it
var intermediateAudioExts = map[string]struct{}{
	".webm": {},
	".m4a":  {},
	".mp4":  {},
	".mkv":  {},
	".opus": {},
	".ogg":  {},
	".oga":  {},
	".aac":  {},
}

// NormalizeAudioExt substitutes a known intermediate container
// extension with the transcoder's output extension. Names with an
// unknown extension are returned unchanged.
func NormalizeAudioExt(name, finalExt string) string {
	ext := filepath.Ext(name)
	if strings.EqualFold(ext, finalExt) {
		return name
	}
	if _, ok := intermediateAudioExts[strings.ToLower(ext)]; ok {
		return strings.TrimSuffix(name, ext) + finalExt
	}
	return name
}
