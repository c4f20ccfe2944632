package version

import (
	"fmt"
	"strconv"
	"time"
)

// Version is the application version. Can be overridden at build time via:
//
//	go build -ldflags "-X rssw.eu/licensepanel/internal/version.Version=1.2.3"
var Version = "1.0"

// RepoURL is the project repository URL. Can be overridden at build time via:
//
//	go build -ldflags "-X rssw.eu/licensepanel/internal/version.RepoURL=https://example.com/yourfork"
var RepoURL = "https://github.com/Riverside-Software/licensepanel"

// Banner returns identifying information about the service.
func Banner() string {
	y := strconv.Itoa(time.Now().Year())
	copyright := "Copyright 2025-" + y + " Riverside Software. All rights reserved."

	return fmt.Sprintf("%s\nCABL license panel (v%s)\n%s\n", product(), Version, copyright)
}

func product() string {
	// http://patorjk.com/software/taag/#p=display&f=Standard&t=CABL
	const s = `
   ____    _    ____  _
  / ___|  / \  | __ )| |
 | |     / _ \ |  _ \| |
 | |___ / ___ \| |_) | |___
  \____/_/   \_\____/|_____|
`
	return s
}
