package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/resssoft/casefolio/internal/mediator"
	"github.com/resssoft/casefolio/internal/models"
	"github.com/rs/zerolog/log"
	uuid "github.com/satori/go.uuid"
)

type Kind string

const (
	KindContent   Kind = "content"
	KindThumbnail Kind = "thumbnail"
	KindHero      Kind = "hero"
)

var kindDirs = map[Kind]string{
	KindContent:   "",
	KindThumbnail: "thumbnails",
	KindHero:      "heroImages",
}

// Storage is the disk blob store behind the upload endpoints. Each upload is
// a single-shot write under a fresh name, so concurrent uploads never
// conflict.
type Storage struct {
	root       string
	dispatcher *mediator.Dispatcher
}

func NewStorage(root string, dispatcher *mediator.Dispatcher) (*Storage, error) {
	for _, dir := range kindDirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return nil, err
		}
	}
	return &Storage{
		root:       root,
		dispatcher: dispatcher,
	}, nil
}

func (s *Storage) Root() string {
	return s.root
}

// Save writes the uploaded bytes under a unique stored name and returns that
// name. The stored name is the blob reference kept on posts.
func (s *Storage) Save(kind Kind, originalName string, src io.Reader) (string, error) {
	dir, ok := kindDirs[kind]
	if !ok {
		return "", fmt.Errorf("unknown upload kind %q", kind)
	}
	name := storedName(originalName)
	path := filepath.Join(s.root, dir, name)
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", err
	}
	written, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if s.dispatcher != nil {
		if dispatchErr := s.dispatcher.Dispatch(models.LogToFile, models.FileLoggerEvent{
			Src:  models.FileLogUploads,
			Data: fmt.Sprintf("%s %s %d bytes", kind, name, written),
		}); dispatchErr != nil {
			log.Debug().Err(dispatchErr).Send()
		}
	}
	return name, nil
}

// ListStored returns every stored name currently on disk, across all kinds.
func (s *Storage) ListStored() ([]string, error) {
	var names []string
	for _, dir := range kindDirs {
		entries, err := os.ReadDir(filepath.Join(s.root, dir))
		if err != nil {
			return names, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// storedName builds a collision-free filename that still carries the original
// name for operators reading the directory.
func storedName(originalName string) string {
	base := sanitizeName(filepath.Base(originalName))
	return fmt.Sprintf("%d-%s-%s",
		time.Now().UnixNano()/int64(time.Millisecond),
		uuid.NewV4().String(),
		base)
}

func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, " ", "-")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
