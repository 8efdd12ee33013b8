package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

// OSGConfigDir is where OSG 3 installations keep their config.ini fragments.
var OSGConfigDir = "/etc/osg/config.d"

// ErrNoOSGConfig is returned when no OSG configuration file can be found.
var ErrNoOSGConfig = errors.New("no OSG configuration found")

// SiteSection is the config.ini section describing the site.
const SiteSection = "Site Information"

const gridITB = "OSG-ITB"

// OSGConfig is a parsed OSG/VDT config.ini.
type OSGConfig struct {
	file *ini.File
}

// LoadOSG locates and parses the OSG configuration. Pacman installations
// ($OSG_LOCATION or $VDT_LOCATION) take precedence over the config.d
// fragments of OSG 3.
func LoadOSG() (*OSGConfig, error) {
	if path := legacyConfigPath(); path != "" {
		return LoadOSGFiles(path)
	}
	paths, err := filepath.Glob(filepath.Join(OSGConfigDir, "*.ini"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", OSGConfigDir, err)
	}
	if len(paths) == 0 {
		return nil, ErrNoOSGConfig
	}
	sort.Strings(paths)
	return LoadOSGFiles(paths...)
}

// LoadOSGFiles parses the given files, later files overriding earlier ones.
func LoadOSGFiles(paths ...string) (*OSGConfig, error) {
	if len(paths) == 0 {
		return nil, ErrNoOSGConfig
	}
	others := make([]any, 0, len(paths)-1)
	for _, p := range paths[1:] {
		others = append(others, p)
	}
	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, paths[0], others...)
	if err != nil {
		return nil, fmt.Errorf("parse OSG configuration: %w", err)
	}
	return &OSGConfig{file: f}, nil
}

// Value returns the value of key in section. With an empty section every
// section is searched in order, then the DEFAULT section.
func (c *OSGConfig) Value(key, section string) (string, bool) {
	if section != "" {
		sec, err := c.file.GetSection(section)
		if err != nil || !sec.HasKey(key) {
			return "", false
		}
		return sec.Key(key).String(), true
	}
	for _, sec := range c.file.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		if sec.HasKey(key) {
			return sec.Key(key).String(), true
		}
	}
	if def := c.file.Section(ini.DefaultSection); def.HasKey(key) {
		return def.Key(key).String(), true
	}
	return "", false
}

// GetValue looks up key in the local OSG configuration. It reports false
// when the configuration or the key is missing.
func GetValue(key, section string) (string, bool) {
	c, err := LoadOSG()
	if err != nil {
		return "", false
	}
	return c.Value(key, section)
}

// GridType returns 1 for OSG-ITB sites and 0 for production or anything else.
func (c *OSGConfig) GridType() int {
	group, ok := c.Value("group", SiteSection)
	if ok && strings.TrimSpace(group) == gridITB {
		return 1
	}
	return 0
}

// GridType is OSGConfig.GridType on the local configuration. A site without
// configuration counts as production.
func GridType() int {
	c, err := LoadOSG()
	if err != nil {
		return 0
	}
	return c.GridType()
}

// GridTypeString translates a grid type: 0 is "OSG", 1 is "OSG-ITB". Any
// other value returns the group configured in Site Information.
func GridTypeString(gridType int) string {
	switch gridType {
	case 0:
		return "OSG"
	case 1:
		return gridITB
	}
	group, _ := GetValue("group", SiteSection)
	return group
}

func legacyConfigPath() string {
	var found string
	for _, env := range []string{"OSG_LOCATION", "VDT_LOCATION"} {
		root := os.Getenv(env)
		if root == "" {
			continue
		}
		path := filepath.Join(root, "osg", "etc", "config.ini")
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			found = path
		}
	}
	return found
}
