//go:build windows

package automation

import (
	"context"

	"piemenu/internal/workspace"
)

// unsupportedBridge: на Windows меню других приложений не автоматизируются,
// работают только команды-нажатия.
type unsupportedBridge struct{}

func newBridge() Bridge {
	return unsupportedBridge{}
}

func (unsupportedBridge) Click(context.Context, workspace.App, []string) error {
	return ErrUnsupported
}

func (unsupportedBridge) List(context.Context, workspace.App) ([][]string, error) {
	return nil, ErrUnsupported
}
