// Package version reports the build version of bm.
package version

import "runtime/debug"

// Version is set at build time with
// -ldflags "-X github.com/vanderheijden86/bubblemap/pkg/version.Version=v1.2.3".
var Version = ""

func init() {
	if Version != "" {
		return
	}
	Version = "dev"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
}
