package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/memmaker/meshcast/engine/util"
)

func main() {
	configFile := flag.String("config", "scene.cfg", "scene config file")
	dumpDir := flag.String("dump", "", "write every loaded collider as an .nbt snapshot into this directory")
	flag.Parse()

	if err := run(*configFile, *dumpDir); err != nil {
		util.LogSystemError(fmt.Sprintf("%+v", err))
		os.Exit(1)
	}
}

func run(configFile, dumpDir string) error {
	config, err := ReadSceneConfig(configFile)
	if err != nil {
		return err
	}
	meshColliders, err := LoadColliders(config.Meshes())
	if err != nil {
		return err
	}
	if dumpDir != "" {
		if err = DumpColliders(dumpDir, meshColliders); err != nil {
			return err
		}
	}

	colliders := make([]util.Collider, len(meshColliders))
	for i, collider := range meshColliders {
		util.LogSystemInfo(collider.ToString())
		colliders[i] = collider
	}
	rays := config.Rays()
	results := RunCasts(colliders, rays)
	PrintResults(os.Stdout, rays, results)

	for _, rayResults := range results {
		for _, result := range rayResults {
			if result.Err != nil {
				return result.Err
			}
		}
	}
	return nil
}
