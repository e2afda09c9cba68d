package workspace

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// bundleInfo - поля Info.plist, сконвертированного в JSON утилитой plutil.
type bundleInfo struct {
	Identifier  string `json:"CFBundleIdentifier"`
	Name        string `json:"CFBundleName"`
	DisplayName string `json:"CFBundleDisplayName"`
}

// parseBundleInfo строит App из Info.plist в JSON.
func parseBundleInfo(bundlePath string, data []byte) (App, bool) {
	var info bundleInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return App{}, false
	}
	if info.Identifier == "" {
		return App{}, false
	}
	name := info.DisplayName
	if name == "" {
		name = info.Name
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(bundlePath), ".app")
	}
	return App{ID: info.Identifier, Name: name, Path: bundlePath}, true
}
