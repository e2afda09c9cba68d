//go:build darwin

package automation

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"piemenu/internal/workspace"
)

type appleScriptBridge struct{}

func newBridge() Bridge {
	return appleScriptBridge{}
}

func runScript(ctx context.Context, script string) (string, error) {
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		// System Events сообщает "Can’t get menu item ..." с кодом -1728
		if strings.Contains(msg, "-1728") || strings.Contains(msg, "Can’t get") || strings.Contains(msg, "Can't get") {
			return "", fmt.Errorf("%w: %s", ErrItemNotFound, msg)
		}
		return "", fmt.Errorf("osascript: %w: %s", err, msg)
	}
	return string(out), nil
}

func (appleScriptBridge) Click(ctx context.Context, app workspace.App, path []string) error {
	script, err := clickScript(app.Name, path)
	if err != nil {
		return err
	}
	_, err = runScript(ctx, script)
	return err
}

func (appleScriptBridge) List(ctx context.Context, app workspace.App) ([][]string, error) {
	out, err := runScript(ctx, listScript(app.Name))
	if err != nil {
		return nil, err
	}
	return parseListing(out), nil
}
