package apps

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/ini.v1"

	"github.com/lvim-tech/qlapps/internal/logging"
	"github.com/lvim-tech/qlapps/internal/utils"
)

const desktopEntryGroup = "Desktop Entry"

// DesktopProvider reads .desktop files from application directories.
// A desktop-file ID found in an earlier directory shadows the same ID in
// later ones.
type DesktopProvider struct {
	Dirs []string

	// Desktops is the list from $XDG_CURRENT_DESKTOP, used for OnlyShowIn/NotShowIn.
	Desktops []string

	Logger *slog.Logger
}

// DefaultApplicationDirs връща extra директориите, последвани от XDG application директориите
func DefaultApplicationDirs(extra ...string) []string {
	dirs := make([]string, 0, len(extra)+len(xdg.ApplicationDirs))
	for _, dir := range extra {
		dirs = append(dirs, utils.ExpandPath(dir))
	}
	return append(dirs, xdg.ApplicationDirs...)
}

// NewDesktopProvider returns a provider over dirs for the current desktop session.
func NewDesktopProvider(dirs []string, logger *slog.Logger) *DesktopProvider {
	return &DesktopProvider{
		Dirs:     dirs,
		Desktops: splitNonEmpty(os.Getenv("XDG_CURRENT_DESKTOP"), ":"),
		Logger:   logging.OrDiscard(logger),
	}
}

// List walks every directory and returns one App per desktop-file ID.
// Missing directories and unreadable files are skipped.
func (p *DesktopProvider) List() ([]App, error) {
	logger := logging.OrDiscard(p.Logger)

	seen := make(map[string]bool)
	var result []App

	for _, dir := range p.Dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == dir && errors.Is(err, fs.ErrNotExist) {
					return filepath.SkipDir
				}
				logger.Debug("skipping unreadable path", "path", path, "error", err)
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".desktop") {
				return nil
			}

			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return nil
			}
			id := strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")
			if seen[id] {
				return nil
			}
			seen[id] = true

			entry, err := parseDesktopFile(path)
			if err != nil {
				logger.Debug("skipping desktop entry", "path", path, "error", err)
				return nil
			}
			if entry.get("Type") != "Application" || entry.boolean("Hidden") {
				return nil
			}

			result = append(result, App{
				ID:      id,
				Name:    entry.get("Name"),
				Exec:    entry.get("Exec"),
				Visible: p.shouldShow(entry),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", dir, err)
		}
	}

	return result, nil
}

// shouldShow applies NoDisplay and the OnlyShowIn/NotShowIn lists.
func (p *DesktopProvider) shouldShow(entry desktopEntry) bool {
	if entry.boolean("NoDisplay") {
		return false
	}

	if only, ok := entry["OnlyShowIn"]; ok {
		return p.inCurrentDesktop(splitNonEmpty(only, ";"))
	}
	if not, ok := entry["NotShowIn"]; ok {
		return !p.inCurrentDesktop(splitNonEmpty(not, ";"))
	}
	return true
}

func (p *DesktopProvider) inCurrentDesktop(names []string) bool {
	for _, current := range p.Desktops {
		for _, name := range names {
			if strings.EqualFold(current, name) {
				return true
			}
		}
	}
	return false
}

// desktopEntry съдържа ключовете от групата [Desktop Entry]
type desktopEntry map[string]string

func (e desktopEntry) get(key string) string {
	return e[key]
}

func (e desktopEntry) boolean(key string) bool {
	return e[key] == "true"
}

// desktopLoadOptions read desktop files as plain key=value groups. Values
// keep their quotes, '#' and ';' and a trailing backslash, all of which are
// part of Exec lines.
var desktopLoadOptions = ini.LoadOptions{
	IgnoreContinuation:      true,
	IgnoreInlineComment:     true,
	PreserveSurroundedQuote: true,
	SkipUnrecognizableLines: true,
	KeyValueDelimiters:      "=",
}

// parseDesktopFile reads the unlocalised keys of the [Desktop Entry] group.
func parseDesktopFile(path string) (desktopEntry, error) {
	file, err := ini.LoadSources(desktopLoadOptions, path)
	if err != nil {
		return nil, err
	}

	section, err := file.GetSection(desktopEntryGroup)
	if err != nil {
		return nil, err
	}

	entry := make(desktopEntry)
	for _, key := range section.Keys() {
		name := key.Name()
		if strings.Contains(name, "[") {
			// Localised variant, e.g. Name[de].
			continue
		}
		entry[name] = unescapeValue(key.Value())
	}
	return entry, nil
}

// unescapeValue resolves the string escapes \s \n \t \r and \\.
func unescapeValue(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}

	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c != '\\' || i == len(value)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch value[i] {
		case 's':
			b.WriteByte(' ')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(value[i])
		}
	}
	return b.String()
}

func splitNonEmpty(s, sep string) []string {
	var parts []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
