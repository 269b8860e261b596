package apps

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDesktopFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func listByID(t *testing.T, p *DesktopProvider) map[string]App {
	t.Helper()
	all, err := p.List()
	require.NoError(t, err)

	byID := make(map[string]App, len(all))
	for _, app := range all {
		byID[app.ID] = app
	}
	return byID
}

func TestDesktopProvider_List(t *testing.T) {
	dir := t.TempDir()

	writeDesktopFile(t, dir, "firefox.desktop", `# comment
[Desktop Entry]
Type=Application
Name=Firefox
Name[de]=Feuerfuchs
Exec=firefox %u

[Desktop Action new-window]
Name=New Window
Exec=firefox --new-window %u
`)
	writeDesktopFile(t, dir, "helper.desktop", `[Desktop Entry]
Type=Application
Name=Helper
Exec=helper
NoDisplay=true
`)
	writeDesktopFile(t, dir, "gone.desktop", `[Desktop Entry]
Type=Application
Name=Gone
Exec=gone
Hidden=true
`)
	writeDesktopFile(t, dir, "link.desktop", `[Desktop Entry]
Type=Link
Name=Website
URL=https://example.com
`)
	writeDesktopFile(t, dir, "kde/konsole.desktop", `[Desktop Entry]
Type=Application
Name=Konsole
Exec=konsole
`)
	writeDesktopFile(t, dir, "broken.desktop", "no group here\n")
	writeDesktopFile(t, dir, "README", "not a desktop file")

	p := &DesktopProvider{Dirs: []string{dir}}
	byID := listByID(t, p)

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	assert.Equal(t, []string{"firefox.desktop", "helper.desktop", "kde-konsole.desktop"}, ids)

	assert.Equal(t, App{ID: "firefox.desktop", Name: "Firefox", Exec: "firefox %u", Visible: true}, byID["firefox.desktop"])
	assert.False(t, byID["helper.desktop"].Visible)
	assert.True(t, byID["kde-konsole.desktop"].Visible)
}

func TestDesktopProvider_EarlierDirShadowsLater(t *testing.T) {
	user := t.TempDir()
	system := t.TempDir()

	writeDesktopFile(t, user, "editor.desktop", `[Desktop Entry]
Type=Application
Name=Editor
Exec=/run/appimg/run-in-image edit
`)
	writeDesktopFile(t, system, "editor.desktop", `[Desktop Entry]
Type=Application
Name=Editor
Exec=edit
`)

	p := &DesktopProvider{Dirs: []string{user, filepath.Join(user, "missing"), system}}
	all, err := p.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "/run/appimg/run-in-image edit", all[0].Exec)
}

func TestDesktopProvider_ShowIn(t *testing.T) {
	dir := t.TempDir()

	writeDesktopFile(t, dir, "gnome-only.desktop", `[Desktop Entry]
Type=Application
Name=Gnome Only
Exec=a
OnlyShowIn=GNOME;
`)
	writeDesktopFile(t, dir, "not-kde.desktop", `[Desktop Entry]
Type=Application
Name=Not KDE
Exec=b
NotShowIn=KDE;LXQt;
`)

	gnome := listByID(t, &DesktopProvider{Dirs: []string{dir}, Desktops: []string{"ubuntu", "GNOME"}})
	assert.True(t, gnome["gnome-only.desktop"].Visible)
	assert.True(t, gnome["not-kde.desktop"].Visible)

	kde := listByID(t, &DesktopProvider{Dirs: []string{dir}, Desktops: []string{"KDE"}})
	assert.False(t, kde["gnome-only.desktop"].Visible)
	assert.False(t, kde["not-kde.desktop"].Visible)

	none := listByID(t, &DesktopProvider{Dirs: []string{dir}})
	assert.False(t, none["gnome-only.desktop"].Visible)
	assert.True(t, none["not-kde.desktop"].Visible)
}

func TestParseDesktopFile_KeepsExecLineIntact(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "tool.desktop", `; vendor comment
[Desktop Entry]
Type=Application
Name = My\sTool
Name[fr]=Mon outil
Exec="/opt/My Tool/bin/tool" --sep=";" #1 %F \
Categories=Utility;Development;
not a key value line

[Desktop Action other]
Exec=other
`)

	entry, err := parseDesktopFile(filepath.Join(dir, "tool.desktop"))
	require.NoError(t, err)
	assert.Equal(t, "My Tool", entry.get("Name"))
	assert.Equal(t, `"/opt/My Tool/bin/tool" --sep=";" #1 %F \`, entry.get("Exec"))
	assert.Equal(t, "Utility;Development;", entry.get("Categories"))
	_, localised := entry["Name[fr]"]
	assert.False(t, localised)
}

func TestParseDesktopFile_NoDesktopEntryGroup(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "other.desktop", "[Desktop Action new]\nExec=x\n")

	_, err := parseDesktopFile(filepath.Join(dir, "other.desktop"))
	assert.Error(t, err)
}

func TestDesktopProvider_FeedsCatalog(t *testing.T) {
	dir := t.TempDir()
	writeDesktopFile(t, dir, "a.desktop", "[Desktop Entry]\nType=Application\nName=Shared\nExec=first\n")
	writeDesktopFile(t, dir, "b.desktop", "[Desktop Entry]\nType=Application\nName=Shared\nExec=second\n")

	c, err := Load(&DesktopProvider{Dirs: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Shared"}, c.Names())
}

func TestUnescapeValue(t *testing.T) {
	tests := map[string]string{
		`plain`:              "plain",
		`a\sb`:               "a b",
		`line\nbreak`:        "line\nbreak",
		`tab\there`:          "tab\there",
		`cr\r`:               "cr\r",
		`"/opt/my\\ app" %f`: `"/opt/my\ app" %f`,
		`keep\q`:             `keep\q`,
		`trailing\`:          `trailing\`,
	}
	for in, want := range tests {
		assert.Equal(t, want, unescapeValue(in), in)
	}
}

func TestDefaultApplicationDirs(t *testing.T) {
	t.Setenv("QLAPPS_EXTRA", "/srv")

	dirs := DefaultApplicationDirs("$QLAPPS_EXTRA/apps")
	require.NotEmpty(t, dirs)
	assert.Equal(t, "/srv/apps", dirs[0])
}
