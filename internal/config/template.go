package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultTOML is the commented config written by `numberplater init`.
const DefaultTOML = `# numberplater configuration

[analyze]
# families tried when no family flag is given; omit for all of them.
# dateless, northern-irish, suffix, prefix, current or all
# families = ["dateless", "current"]
ignore_year = false
# maximum rows printed by analyze, 0 for all
limit = 0

[scan]
# parallel word lists, 0 uses every CPU
jobs = 0
# .json, .json.xz or .db
output = "words.json"
cache = true
# cache_dir = "/tmp/numberplater"
# drop words that can never be rendered before analysis
prefilter = true
# words remembered across word lists
memo_size = 4096

[output]
# auto, on or off
color = "auto"
# pretty, plain or json
format = "pretty"
`

// ErrExists reports that init would overwrite a config.
var ErrExists = errors.New("config already exists")

// WriteDefault writes DefaultTOML into dir. An existing file is kept unless
// force is set.
func WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, FileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%w: %s", ErrExists, path)
		}
	}
	if err := os.WriteFile(path, []byte(DefaultTOML), 0o644); err != nil {
		return path, err
	}
	return path, nil
}
