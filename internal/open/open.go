package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// File opens path in $EDITOR (falling back to vi), creating it from
// template first when it does not exist yet.
func File(path, template string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
		if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := editorCommand(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// editorCommand builds the editor invocation. GUI editors that return
// immediately are asked to block until the file is closed.
func editorCommand(editor, filePath string) *exec.Cmd {
	base := filepath.Base(editor)
	switch {
	case strings.Contains(base, "code"), strings.Contains(base, "subl"):
		return exec.Command(editor, "--wait", filePath)
	case base == "gedit":
		return exec.Command(editor, "--wait", filePath)
	}
	return exec.Command(editor, filePath)
}
