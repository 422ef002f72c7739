package track

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Assets are the audio files for one song, empty when not found.
type Assets struct {
	Name  string
	Track string
	Hit   string
	Miss  string
}

const (
	hitName  = "hit"
	missName = "miss"
)

var extensions = map[string]bool{
	".mp3": true,
	".ogg": true,
	".wav": true,
}

// Resolve walks dir for the track called name and the hit and miss cues.
// The assets found so far are returned even when the track is missing.
func Resolve(dir, name string) (Assets, error) {
	assets := Assets{Name: name}
	if err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(info.Name()))
		if !extensions[ext] {
			return nil
		}
		switch strings.TrimSuffix(info.Name(), filepath.Ext(info.Name())) {
		case name:
			assets.Track = p
		case hitName:
			assets.Hit = p
		case missName:
			assets.Miss = p
		}
		return nil
	}); nil != err {
		return assets, fmt.Errorf("unable to walk sound directory: %w", err)
	}

	if assets.Track == "" {
		return assets, fmt.Errorf("unable to find %v.mp3/.ogg/.wav in %v", name, dir)
	}
	return assets, nil
}
