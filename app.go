package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/meshcast/engine/util"
	"github.com/pkg/errors"
)

type CastResult struct {
	Ray      string
	Collider string
	Hit      bool
	Nearest  bool
	Point    mgl32.Vec3
	Err      error
}

// LoadColliders loads every configured mesh. Collider names are prefixed with the mesh section name.
func LoadColliders(meshes []*MeshConfig) ([]*util.MeshCollider, error) {
	var result []*util.MeshCollider
	for _, mesh := range meshes {
		var loaded []*util.MeshCollider
		if strings.EqualFold(filepath.Ext(mesh.File), ".nbt") {
			collider, err := util.LoadColliderNBT(mesh.File)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh '%s'", mesh.Name)
			}
			loaded = []*util.MeshCollider{collider}
		} else {
			colliders, err := util.LoadColliderGLTF(mesh.File)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh '%s'", mesh.Name)
			}
			loaded = colliders
		}
		for _, collider := range loaded {
			collider.SetName(mesh.Name + ":" + collider.GetName())
		}
		result = append(result, loaded...)
	}
	return result, nil
}

func DumpColliders(dir string, colliders []*util.MeshCollider) error {
	replacer := strings.NewReplacer("/", "_", "#", "_", ":", "_")
	for _, collider := range colliders {
		filename := filepath.Join(dir, replacer.Replace(collider.GetName())+".nbt")
		if err := util.SaveColliderNBT(filename, collider); err != nil {
			return err
		}
	}
	return nil
}

// RunCasts casts every ray against every collider. Each ray runs on its own goroutine;
// results are ordered like rays and colliders.
func RunCasts(colliders []util.Collider, rays []*RayConfig) [][]CastResult {
	results := make([][]CastResult, len(rays))
	var wg sync.WaitGroup
	for i, ray := range rays {
		wg.Add(1)
		go func(i int, ray *RayConfig) {
			defer wg.Done()
			results[i] = castRay(colliders, ray)
		}(i, ray)
	}
	wg.Wait()
	return results
}

func castRay(colliders []util.Collider, rayConfig *RayConfig) []CastResult {
	ray := rayConfig.Ray()
	boundMin, boundMax := rayConfig.Bounds()
	results := make([]CastResult, len(colliders))
	for i, collider := range colliders {
		result := CastResult{Ray: rayConfig.Name, Collider: collider.GetName()}
		result.Hit, result.Err = collider.IntersectsRayWithin(ray, boundMin, boundMax, util.InBetween)
		if result.Err == nil {
			result.Nearest, result.Point, result.Err = collider.NearestIntersection(ray)
		}
		results[i] = result
	}
	return results
}

func PrintResults(w io.Writer, rays []*RayConfig, results [][]CastResult) {
	for i, rayResults := range results {
		origin := rays[i].Ray().Origin
		for _, result := range rayResults {
			switch {
			case result.Err != nil:
				fmt.Fprintf(w, "%s -> %s: error: %s\n", result.Ray, result.Collider, result.Err.Error())
			case result.Hit:
				fmt.Fprintf(w, "%s -> %s: hit, nearest %v (planar distance %.4f)\n", result.Ray, result.Collider, result.Point, util.PlanarDistance(origin, result.Point))
			case result.Nearest:
				fmt.Fprintf(w, "%s -> %s: miss within bounds, nearest %v (planar distance %.4f)\n", result.Ray, result.Collider, result.Point, util.PlanarDistance(origin, result.Point))
			default:
				fmt.Fprintf(w, "%s -> %s: miss\n", result.Ray, result.Collider)
			}
		}
	}
}
