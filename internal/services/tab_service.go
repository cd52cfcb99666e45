// File: internal/services/tab_service.go
package services

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/deskforensics/go-tabstate/internal/parsers/tabstate"
	"github.com/deskforensics/go-tabstate/internal/types"
)

// TabRecord is the shaped output for one recovered tab.
type TabRecord struct {
	TabID      uuid.UUID  `json:"tab_id"`
	Path       string     `json:"path"`
	Saved      bool       `json:"saved"`
	Content    string     `json:"content"`
	SavedPath  string     `json:"saved_path,omitempty"`
	SavedAt    *time.Time `json:"saved_at,omitempty"`
	Encoding   uint64     `json:"encoding,omitempty"`
	SavedHash  string     `json:"saved_hash,omitempty"`
	LineEnding uint64     `json:"line_ending,omitempty"`
}

// TabServiceOptions controls batch decoding behavior.
type TabServiceOptions struct {
	// IncludeDeleted enables recovery of deleted characters.
	IncludeDeleted bool

	// FailFast aborts the batch on the first decode failure instead of
	// skipping the file.
	FailFast bool
}

// TabService decodes every tab state file a discovery service yields.
type TabService struct {
	discovery *DiscoveryService
	options   TabServiceOptions
	log       *logrus.Entry
}

// NewTabService creates a batch decoding service over the given directory.
func NewTabService(dir string, options TabServiceOptions) *TabService {
	return &TabService{
		discovery: NewDiscoveryService(dir),
		options:   options,
		log:       logrus.WithField("component", "tabservice"),
	}
}

// CollectTabs decodes all discovered tab files. Each file yields exactly
// one record or one error; failed files are logged and skipped unless
// FailFast is set.
func (s *TabService) CollectTabs() ([]TabRecord, error) {
	files, err := s.discovery.DiscoverTabFiles()
	if err != nil {
		return nil, err
	}

	records := make([]TabRecord, 0, len(files))
	for _, file := range files {
		record, err := s.collectTab(file)
		if err != nil {
			if s.options.FailFast {
				return nil, fmt.Errorf("decoding %s: %w", file.Path, err)
			}
			s.log.WithError(err).Warnf("skipping %s", file.Path)
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

// collectTab decodes a single file, releasing the stream on every exit path.
func (s *TabService) collectTab(file TabFile) (TabRecord, error) {
	fh, err := os.Open(file.Path)
	if err != nil {
		return TabRecord{}, err
	}
	defer fh.Close()

	reader := tabstate.NewTabReader(file.Path, s.options.IncludeDeleted)
	content, err := reader.ReadTab(fh)
	if err != nil {
		return TabRecord{}, err
	}

	record := TabRecord{
		TabID:   file.TabID,
		Path:    content.SourcePath,
		Saved:   content.Saved,
		Content: content.Content,
	}
	if meta := content.SavedMetadata; meta != nil {
		record.SavedPath = meta.FilePath
		savedAt := types.FiletimeToTime(meta.Timestamp)
		record.SavedAt = &savedAt
		record.Encoding = meta.Encoding
		record.LineEnding = meta.CarriageReturnType
		record.SavedHash = fmt.Sprintf("%x", meta.ContentHash)
	}
	return record, nil
}
