package app

import (
	"sync"
)

var (
	// RoutinesWG registers all go routines spawned by hushctl
	RoutinesWG = sync.WaitGroup{}

	// ApplicationVersion is the version of the binary
	ApplicationVersion string
	// BuildDate is the date when the binary was built
	BuildDate string
)
