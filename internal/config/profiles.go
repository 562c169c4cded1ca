package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// profilesFileName is the YAML file holding named conversion presets,
// located next to the main config file.
const profilesFileName = "profiles.yaml"

// Profile is a named format/bitrate preset selected with --profile.
type Profile struct {
	Format  string `yaml:"format"`
	Bitrate string `yaml:"bitrate"`
}

// profilesFile is the on-disk YAML document.
type profilesFile struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// LoadProfiles reads ~/.config/audiopipe/profiles.yaml.
// A missing file is not an error; it means no profiles are defined.
func LoadProfiles() (map[string]Profile, error) {
	d, err := dir()
	if err != nil {
		return nil, err
	}
	return loadProfilesFrom(filepath.Join(d, profilesFileName))
}

func loadProfilesFrom(p string) (map[string]Profile, error) {
	data, err := os.ReadFile(p) // #nosec G304 -- path is constructed from home dir
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Profile{}, nil
		}
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}

	var f profilesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}
	if f.Profiles == nil {
		f.Profiles = map[string]Profile{}
	}
	return f.Profiles, nil
}

// GetProfile looks up a named profile.
func GetProfile(profiles map[string]Profile, name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q", name)
	}
	return p, nil
}
