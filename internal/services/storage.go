package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"aiready/resume-ai/internal/logger"
)

// Workspace is a request-scoped directory. Everything a pipeline run writes
// lives under Dir and is removed by Cleanup.
type Workspace struct {
	Dir string
	log *logger.Logger
}

type WorkspaceService interface {
	Create() (*Workspace, error)
}

type workspaceService struct {
	root string
	log  *logger.Logger
}

func NewWorkspaceService(root string, log *logger.Logger) WorkspaceService {
	return &workspaceService{
		root: root,
		log:  log.With("service", "workspace"),
	}
}

func (s *workspaceService) Create() (*Workspace, error) {
	if s.root != "" {
		if err := os.MkdirAll(s.root, 0755); err != nil {
			return nil, fmt.Errorf("failed to create temp root: %w", err)
		}
	}
	dir, err := os.MkdirTemp(s.root, "docproc-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &Workspace{Dir: dir, log: s.log}, nil
}

// Path returns the absolute path of name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// SaveFile copies src into the workspace under name.
func (w *Workspace) SaveFile(name string, src io.Reader) (string, error) {
	filePath := w.Path(name)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return filePath, nil
}

// Cleanup removes the workspace. Failures are logged and swallowed.
func (w *Workspace) Cleanup() {
	if err := os.RemoveAll(w.Dir); err != nil {
		w.log.Warn("failed to remove workspace", "dir", w.Dir, "error", err)
	}
}
