//go:build darwin

package permission

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework Foundation
#import <ApplicationServices/ApplicationServices.h>
#import <Foundation/Foundation.h>

static int axTrusted(int prompt) {
    NSDictionary *options = @{(__bridge id)kAXTrustedCheckOptionPrompt: prompt ? @YES : @NO};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)options) ? 1 : 0;
}
*/
import "C"

import (
	"log"
	"os/exec"
)

const accessibilitySettingsURL = "x-apple.systempreferences:com.apple.preference.security?Privacy_Accessibility"

func trusted() bool {
	return C.axTrusted(0) == 1
}

// requestConsent показывает системный запрос и открывает раздел Универсального доступа.
func requestConsent() {
	C.axTrusted(1)
	if err := exec.Command("open", accessibilitySettingsURL).Start(); err != nil {
		log.Printf("Не удалось открыть настройки Универсального доступа: %v", err)
	}
}
