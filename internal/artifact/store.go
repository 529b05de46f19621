package artifact

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"call-radar-go/internal/config"
	"call-radar-go/internal/logger"
	"call-radar-go/internal/types"
)

// Artifact file names; the file format is the compatibility surface shared
// with the web front end.
const (
	WordsFile     = "transcribed_data.json"
	UtteranceFile = "utterance.json"
	SentimentFile = "sentiment_data.json"
	RadarFile     = "radar_data.json"
	SummaryFile   = "call_summary.xlsx"
)

// Store persists pipeline artifacts as indented JSON. Every write is
// preceded by copying any existing file at the target path into a sibling
// backup directory with a .bak suffix; a missing prior file is not an error.
type Store struct {
	paths config.Paths
}

func NewStore(p config.Paths) *Store {
	return &Store{paths: p}
}

func (s *Store) RawSTT(typeLabel string, v interface{}) error {
	return s.writeJSON(s.paths.STTData, typeLabel+"_stt_output.json", v)
}

func (s *Store) Words(words []types.WordLabel) error {
	return s.writeJSON(s.paths.STTData, WordsFile, words)
}

func (s *Store) Utterances(utts []types.Utterance) error {
	return s.writeJSON(s.paths.STTData, UtteranceFile, utts)
}

func (s *Store) Sentiment(items []types.SentimentItem) error {
	return s.writeJSON(s.paths.NLUData, SentimentFile, items)
}

func (s *Store) Radar(data types.RadarData) error {
	return s.writeJSON(s.paths.RadarData, RadarFile, data)
}

// SummaryPath backs up any existing summary workbook and returns the path
// the report writer should save to.
func (s *Store) SummaryPath() (string, error) {
	if err := os.MkdirAll(s.paths.RadarData, 0o755); err != nil {
		return "", err
	}
	if err := s.backup(s.paths.RadarData, SummaryFile); err != nil {
		return "", err
	}
	return filepath.Join(s.paths.RadarData, SummaryFile), nil
}

func (s *Store) writeJSON(dir, name string, v interface{}) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	if err := s.backup(dir, name); err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func (s *Store) backup(dir, name string) error {
	src := filepath.Join(dir, name)
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}
	backupDir := filepath.Join(dir, s.paths.BackupDir)
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", backupDir, err)
	}
	dst := filepath.Join(backupDir, name+".bak")
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("backup %s: %w", src, err)
	}
	logger.New().WithField("module", "artifact").
		WithField("file", src).WithField("backup", dst).Debug("existing artifact backed up")
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
