package main

import (
	"os"

	"github.com/df07/go-progressive-pathtracer/cmd"
	"github.com/df07/go-progressive-pathtracer/pkg/log"
)

func main() {
	if err := cmd.NewApp().Run(os.Args); err != nil {
		log.New("pathtracer").Error(err)
		os.Exit(1)
	}
}
