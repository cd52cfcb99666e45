// File: internal/services/discovery_service.go
package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// TabFile is one candidate tab state file found on disk.
type TabFile struct {
	// Path is the file's location, passed through to diagnostics and
	// output records.
	Path string

	// TabID is the GUID embedded in the file name, or uuid.Nil when the
	// name is not GUID-shaped.
	TabID uuid.UUID
}

// DiscoveryService finds candidate tab state files in a TabState directory.
type DiscoveryService struct {
	dir string
}

// NewDiscoveryService creates a discovery service for the given directory.
func NewDiscoveryService(dir string) *DiscoveryService {
	return &DiscoveryService{dir: dir}
}

// DiscoverTabFiles returns the tab state files in the directory. The
// ".0.bin" and ".1.bin" sidecar files Notepad keeps next to each tab hold
// window state, not content, and are skipped.
func (s *DiscoveryService) DiscoverTabFiles() ([]TabFile, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.bin"))
	if err != nil {
		return nil, fmt.Errorf("globbing tab state directory %s: %w", s.dir, err)
	}

	var files []TabFile
	for _, path := range matches {
		name := filepath.Base(path)
		if strings.HasSuffix(name, ".0.bin") || strings.HasSuffix(name, ".1.bin") {
			continue
		}

		id, err := uuid.Parse(strings.TrimSuffix(name, ".bin"))
		if err != nil {
			id = uuid.Nil
		}
		files = append(files, TabFile{Path: path, TabID: id})
	}

	return files, nil
}
