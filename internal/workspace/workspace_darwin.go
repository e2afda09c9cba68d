//go:build darwin

package workspace

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework ApplicationServices -framework Foundation
#import <AppKit/AppKit.h>
#import <ApplicationServices/ApplicationServices.h>
#include <stdlib.h>
#include <string.h>

static char* copyString(NSString *s) {
    if (s == nil) {
        return NULL;
    }
    return strdup([s UTF8String]);
}

static void frontmostApp(char **bundleID, char **name, char **path) {
    @autoreleasepool {
        NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
        *bundleID = copyString(app.bundleIdentifier);
        *name = copyString(app.localizedName);
        *path = copyString(app.bundleURL.path);
    }
}

static int runningApp(const char *bundleID, char **name, char **path) {
    @autoreleasepool {
        NSString *ident = [NSString stringWithUTF8String:bundleID];
        NSArray<NSRunningApplication *> *apps = [NSRunningApplication runningApplicationsWithBundleIdentifier:ident];
        if (apps.count == 0) {
            return 0;
        }
        NSRunningApplication *app = apps.firstObject;
        *name = copyString(app.localizedName);
        *path = copyString(app.bundleURL.path);
        return 1;
    }
}

static void pointerLocation(double *x, double *y) {
    CGEventRef event = CGEventCreate(NULL);
    CGPoint p = CGEventGetLocation(event);
    CFRelease(event);
    *x = p.x;
    *y = p.y;
}
*/
import "C"

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unsafe"
)

type darwinSystem struct{}

func newSystem() Provider {
	return darwinSystem{}
}

func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(s))
	return C.GoString(s)
}

func (darwinSystem) Frontmost() (App, error) {
	var id, name, path *C.char
	C.frontmostApp(&id, &name, &path)
	app := App{ID: goString(id), Name: goString(name), Path: goString(path)}
	if app.ID == "" {
		return App{}, fmt.Errorf("%w: нет активного приложения", ErrUnavailable)
	}
	return app, nil
}

func (darwinSystem) Running(id string) (App, bool) {
	cid := C.CString(id)
	defer C.free(unsafe.Pointer(cid))

	var name, path *C.char
	if C.runningApp(cid, &name, &path) == 0 {
		return App{}, false
	}
	return App{ID: id, Name: goString(name), Path: goString(path)}, true
}

// Pointer возвращает глобальные координаты с началом в левом верхнем углу главного экрана.
func (darwinSystem) Pointer() (int, int, error) {
	var x, y C.double
	C.pointerLocation(&x, &y)
	return int(x), int(y), nil
}

// Installed ищет .app бандлы и читает Info.plist через plutil.
func (darwinSystem) Installed() ([]App, error) {
	home, _ := os.UserHomeDir()
	dirs := []string{
		"/Applications",
		"/Applications/Utilities",
		"/System/Applications",
		"/System/Applications/Utilities",
		filepath.Join(home, "Applications"),
	}

	var apps []App
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !strings.HasSuffix(e.Name(), ".app") {
				continue
			}
			bundle := filepath.Join(dir, e.Name())
			plist := filepath.Join(bundle, "Contents", "Info.plist")
			data, err := exec.Command("plutil", "-convert", "json", "-o", "-", plist).Output()
			if err != nil {
				continue
			}
			if app, ok := parseBundleInfo(bundle, data); ok {
				apps = append(apps, app)
			}
		}
	}
	log.Printf("Найдено приложений: %d", len(apps))
	return normalizeApps(apps), nil
}
