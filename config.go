package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/meshcast/engine/util"
	"gopkg.in/gcfg.v1"
)

type SceneConfig struct {
	Log  LogConfig
	Mesh map[string]*MeshConfig
	Ray  map[string]*RayConfig
}

type LogConfig struct {
	Level      string
	Categories string
}

type MeshConfig struct {
	// Required
	File string

	Name string
}

type RayConfig struct {
	// Required
	Origin, Direction string

	// Optional, both or neither
	BoundMin, BoundMax string

	Name string

	// parsed by CheckInit
	rayOrigin, rayDirection mgl32.Vec3
	bounded                 bool
	lower, upper            mgl32.Vec3
}

func ReadSceneConfig(filename string) (*SceneConfig, error) {
	config := &SceneConfig{}
	if err := gcfg.ReadFileInto(config, filename); err != nil {
		return nil, err
	}
	if err := config.CheckInit(); err != nil {
		return nil, err
	}
	return config, nil
}

func (config *SceneConfig) CheckInit() error {
	if len(config.Mesh) == 0 {
		return fmt.Errorf("Need to specify at least one [mesh] section.")
	}
	if len(config.Ray) == 0 {
		return fmt.Errorf("Need to specify at least one [ray] section.")
	}
	if err := config.Log.CheckInit(); err != nil {
		return err
	}
	for name, mesh := range config.Mesh {
		if err := mesh.CheckInit(name); err != nil {
			return err
		}
	}
	for name, ray := range config.Ray {
		if err := ray.CheckInit(name); err != nil {
			return err
		}
	}
	return nil
}

// Meshes returns the mesh sections ordered by name.
func (config *SceneConfig) Meshes() []*MeshConfig {
	meshes := make([]*MeshConfig, 0, len(config.Mesh))
	for _, mesh := range config.Mesh {
		meshes = append(meshes, mesh)
	}
	sort.Slice(meshes, func(i, j int) bool { return meshes[i].Name < meshes[j].Name })
	return meshes
}

// Rays returns the ray sections ordered by name.
func (config *SceneConfig) Rays() []*RayConfig {
	rays := make([]*RayConfig, 0, len(config.Ray))
	for _, ray := range config.Ray {
		rays = append(rays, ray)
	}
	sort.Slice(rays, func(i, j int) bool { return rays[i].Name < rays[j].Name })
	return rays
}

func (log *LogConfig) CheckInit() error {
	if log.Level != "" {
		level, err := parseLogLevel(log.Level)
		if err != nil {
			return err
		}
		util.GLOBAL_LOG_LEVEL = level
	}
	if log.Categories != "" {
		var categories util.LogCategory
		for _, name := range strings.Split(log.Categories, ",") {
			switch strings.ToLower(strings.TrimSpace(name)) {
			case "collision":
				categories |= util.LogCollision
			case "io":
				categories |= util.LogIO
			case "system":
				categories |= util.LogSystem
			default:
				return fmt.Errorf("Unknown log category '%s'.", name)
			}
		}
		util.GLOBAL_LOG_CATEGORIES = categories
	}
	return nil
}

func parseLogLevel(level string) (util.LogLevel, error) {
	switch strings.ToLower(level) {
	case "error":
		return util.LogLevelError, nil
	case "warning":
		return util.LogLevelWarning, nil
	case "debug":
		return util.LogLevelDebug, nil
	case "info":
		return util.LogLevelInfo, nil
	}
	return 0, fmt.Errorf("Unknown log level '%s'.", level)
}

func (mesh *MeshConfig) CheckInit(name string) error {
	if mesh.File == "" {
		return fmt.Errorf("Need to specify a file for Mesh '%s'.", name)
	}
	mesh.Name = name
	return nil
}

func (ray *RayConfig) CheckInit(name string) error {
	var err error
	if ray.rayOrigin, err = parseVec3(ray.Origin); err != nil {
		return fmt.Errorf("Origin of Ray '%s' is invalid: %s", name, err.Error())
	}
	if ray.rayDirection, err = parseVec3(ray.Direction); err != nil {
		return fmt.Errorf("Direction of Ray '%s' is invalid: %s", name, err.Error())
	}
	if ray.rayDirection.Len() == 0 {
		return fmt.Errorf("Ray '%s' given a zero direction.", name)
	}

	if (ray.BoundMin == "") != (ray.BoundMax == "") {
		return fmt.Errorf("Ray '%s' needs both BoundMin and BoundMax, or neither.", name)
	}
	if ray.BoundMin != "" {
		if ray.lower, err = parseVec3(ray.BoundMin); err != nil {
			return fmt.Errorf("BoundMin of Ray '%s' is invalid: %s", name, err.Error())
		}
		if ray.upper, err = parseVec3(ray.BoundMax); err != nil {
			return fmt.Errorf("BoundMax of Ray '%s' is invalid: %s", name, err.Error())
		}
		ray.bounded = true
	}

	ray.Name = name
	return nil
}

func (ray *RayConfig) Ray() util.Ray {
	return util.Ray{Origin: ray.rayOrigin, Direction: ray.rayDirection}
}

// Bounds returns the acceptance box of the ray, unbounded if none was configured.
func (ray *RayConfig) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if !ray.bounded {
		return util.UnboundedMin, util.UnboundedMax
	}
	return ray.lower, ray.upper
}

func parseVec3(value string) (mgl32.Vec3, error) {
	var x, y, z float32
	if value == "" {
		return mgl32.Vec3{}, fmt.Errorf("missing value")
	}
	if _, err := fmt.Sscanf(value, "%g %g %g", &x, &y, &z); err != nil {
		return mgl32.Vec3{}, fmt.Errorf("expected three numbers, got '%s'", value)
	}
	return mgl32.Vec3{x, y, z}, nil
}
