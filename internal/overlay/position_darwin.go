//go:build darwin

package overlay

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit
#import <AppKit/AppKit.h>
#include <stdlib.h>

static NSWindow *findWindow(NSString *title) {
    for (NSWindow *w in [NSApp windows]) {
        if ([[w title] isEqualToString:title]) {
            return w;
        }
    }
    return nil;
}

// windowGeometry возвращает размер окна, высоту главного экрана и видимую
// область экрана под точкой (px, py). Координаты Cocoa, в точках.
static int windowGeometry(const char *title, double px, double py,
                          double *w, double *h, double *primaryHeight,
                          double *vx, double *vy, double *vw, double *vh) {
    __block int found = 0;
    @autoreleasepool {
        NSString *name = [NSString stringWithUTF8String:title];
        dispatch_sync(dispatch_get_main_queue(), ^{
            NSWindow *win = findWindow(name);
            NSScreen *primary = [[NSScreen screens] firstObject];
            if (win == nil || primary == nil) {
                return;
            }
            *w = win.frame.size.width;
            *h = win.frame.size.height;
            *primaryHeight = NSMaxY(primary.frame);

            NSRect visible = primary.visibleFrame;
            NSPoint cursor = NSMakePoint(px, *primaryHeight - py);
            for (NSScreen *s in [NSScreen screens]) {
                if (NSPointInRect(cursor, s.frame)) {
                    visible = s.visibleFrame;
                    break;
                }
            }
            *vx = visible.origin.x;
            *vy = visible.origin.y;
            *vw = visible.size.width;
            *vh = visible.size.height;
            found = 1;
        });
    }
    return found;
}

static void placeWindow(const char *title, double left, double top) {
    @autoreleasepool {
        NSString *name = [NSString stringWithUTF8String:title];
        dispatch_async(dispatch_get_main_queue(), ^{
            NSWindow *win = findWindow(name);
            if (win == nil) {
                return;
            }
            [win setLevel:NSPopUpMenuWindowLevel];
            [win setFrameTopLeftPoint:NSMakePoint(left, top)];
            [win makeKeyAndOrderFront:nil];
            [NSApp activateIgnoringOtherApps:YES];
        });
    }
}
*/
import "C"

import (
	"image"
	"time"
	"unsafe"
)

// positionWindow центрирует окно на точке (x, y) и держит его поверх остальных.
// x, y - глобальные координаты с началом в левом верхнем углу главного экрана,
// размер окна берётся из NSWindow в точках.
func positionWindow(title string, x, y, width, height int) {
	// Окну нужно время, чтобы появиться
	time.Sleep(50 * time.Millisecond)

	ctitle := C.CString(title)
	defer C.free(unsafe.Pointer(ctitle))

	var w, h, primary, vx, vy, vw, vh C.double
	if C.windowGeometry(ctitle, C.double(x), C.double(y), &w, &h, &primary, &vx, &vy, &vw, &vh) == 0 {
		return
	}

	size := image.Pt(int(w), int(h))
	visible := flipY(image.Rect(int(vx), int(vy), int(vx+vw), int(vy+vh)), int(primary))
	origin := keepInside(centerOn(image.Pt(x, y), size), size, visible)

	C.placeWindow(ctitle, C.double(origin.X), C.double(int(primary)-origin.Y))
}
