package main

import (
	"github.com/wojciech-malota-wojcik/fixtures"
	"github.com/wojciech-malota-wojcik/run"
)

func main() {
	run.Tool("gen-halos", fixtures.HalosIoCBuilder, fixtures.HalosApp)
}
