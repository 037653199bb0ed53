//go:build windows

package notify

import (
	"fmt"

	"golang.org/x/sys/windows"
)

const (
	mbIconError       = 0x00000010
	mbIconInformation = 0x00000040
	mbSystemModal     = 0x00001000
)

func showNative(title, text string, isError bool) error {
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return fmt.Errorf("encode title: %w", err)
	}
	textPtr, err := windows.UTF16PtrFromString(text)
	if err != nil {
		return fmt.Errorf("encode text: %w", err)
	}

	style := uint32(mbIconInformation)
	if isError {
		style = mbIconError
	}
	if _, err := windows.MessageBox(0, textPtr, titlePtr, style|mbSystemModal); err != nil {
		return fmt.Errorf("message box: %w", err)
	}
	return nil
}
