package internal

import (
	"log"
	"os"
)

// InitLogging sends log output to stdout. verbose adds file:line.
func InitLogging(verbose bool) {
	log.SetOutput(os.Stdout)
	flags := log.LstdFlags | log.Lmicroseconds
	if verbose {
		flags |= log.Lshortfile
	}
	log.SetFlags(flags)
	log.SetPrefix("bikewatch ")
}
