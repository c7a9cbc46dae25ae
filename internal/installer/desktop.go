package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// desktopEntryTemplate is the minimal entry desktop environments need to show
// an installed AppImage in their launchers.
const desktopEntryTemplate = `[Desktop Entry]
Type=Application
Name=%s
Exec=%q
Terminal=false
Categories=Utility;
`

// writeDesktopEntry creates a .desktop file for an installed AppImage.
func (i *Installer) writeDesktopEntry(appImagePath string) error {
	if i.applicationsDir == "" {
		return nil
	}
	if err := os.MkdirAll(i.applicationsDir, 0o755); err != nil {
		return err
	}
	base := desktopEntryBase(appImagePath)
	display := strings.NewReplacer("-", " ", "_", " ").Replace(base)
	content := fmt.Sprintf(desktopEntryTemplate, display, appImagePath)
	return os.WriteFile(filepath.Join(i.applicationsDir, base+".desktop"), []byte(content), 0o644)
}

// removeDesktopEntry deletes the .desktop file written for an AppImage, if
// one exists.
func (i *Installer) removeDesktopEntry(appImagePath string) error {
	if i.applicationsDir == "" {
		return nil
	}
	path := filepath.Join(i.applicationsDir, desktopEntryBase(appImagePath)+".desktop")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// desktopEntryBase strips the AppImage suffix from a path's file name.
func desktopEntryBase(appImagePath string) string {
	name := filepath.Base(appImagePath)
	name = strings.TrimSuffix(name, ".AppImage")
	name = strings.TrimSuffix(name, ".appimage")
	return name
}
