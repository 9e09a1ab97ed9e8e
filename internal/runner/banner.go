package runner

import (
	"github.com/projectdiscovery/gologger"
)

var banner = (`
  _____      _                 _
 / ____|    | |               | |
| |     ___ | | ___   ___ __ _| |_ ___
| |    / _ \| |/ _ \ / __/ _` + "`" + ` | __/ _ \
| |___| (_) | | (_) | (_| (_| | ||  __/
 \_____\___/|_|\___/ \___\__,_|\__\___|
`)

var version = "v0.0.1"

// showBanner prints the tool banner to stdout.
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tspatial colocation pattern mining\n\n")
}
