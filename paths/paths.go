// seehuhn.de/go/fonttools - tools for maintaining font family releases
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package paths locates the working directories of a font release
// tree.  A config file maps short names to directories, so that
// tools can refer to "[fonts]/NotoSans-Regular.ttf" instead of
// hard-coding paths.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// ConfigEnv overrides the location of the config file.
const ConfigEnv = "FONTTOOLS_CONFIG"

// configFileName is the config file in the user's home directory.
const configFileName = ".fonttools"

// ConfigFile returns the path of the config file.
func ConfigFile() string {
	if fname := os.Getenv(ConfigEnv); fname != "" {
		return fname
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(home, configFileName)
}

// Config reads the config file.  A missing file is not an error and
// yields an empty configuration.
func Config() (map[string]string, error) {
	fname := ConfigFile()
	if _, err := os.Stat(fname); os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	return godotenv.Read(fname)
}

// Resolve expands a leading "[key]/" in path using the config file.
// Paths without a bracket prefix are returned unchanged.
func Resolve(path string) (string, error) {
	if !strings.HasPrefix(path, "[") {
		return path, nil
	}
	end := strings.IndexByte(path, ']')
	if end < 0 {
		return "", fmt.Errorf("paths: unterminated key in %q", path)
	}
	key := path[1:end]
	rest := strings.TrimPrefix(path[end+1:], "/")

	config, err := Config()
	if err != nil {
		return "", err
	}
	base, ok := config[key]
	if !ok {
		return "", fmt.Errorf("paths: %q is not set in %s", key, ConfigFile())
	}
	if rest == "" {
		return base, nil
	}
	return filepath.Join(base, rest), nil
}

// EnsureDir creates the directory if needed.  With clean set, any
// previous contents are removed.
func EnsureDir(dir string, clean bool) error {
	if clean {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	return os.MkdirAll(dir, 0o755)
}
