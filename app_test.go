package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/meshcast/engine/glhf"
	"github.com/memmaker/meshcast/engine/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gcfg.v1"
)

const sceneConfig = `
[log]
level = error
categories = collision, io

[mesh "ground"]
file = ground.nbt

[ray "down"]
origin = 0.5 0.5 5
direction = 0 0 -1

[ray "boxed"]
origin = 0.5 0.5 5
direction = 0 0 -1
boundmin = 3 3 3
boundmax = 4 4 4
`

func readConfig(t *testing.T, text string) (*SceneConfig, error) {
	t.Helper()
	level, categories := util.GLOBAL_LOG_LEVEL, util.GLOBAL_LOG_CATEGORIES
	t.Cleanup(func() {
		util.GLOBAL_LOG_LEVEL, util.GLOBAL_LOG_CATEGORIES = level, categories
	})
	config := &SceneConfig{}
	require.NoError(t, gcfg.ReadStringInto(config, text))
	return config, config.CheckInit()
}

func groundCollider() *util.MeshCollider {
	format := glhf.AttrFormat{{Name: util.PositionAttribute, Type: glhf.Vec3}}
	return util.NewMeshCollider("ground", format, []glhf.GlFloat{
		0, 0, 0,
		2, 0, 0,
		0, 2, 0,
	}, nil)
}

func TestSceneConfig(t *testing.T) {
	config, err := readConfig(t, sceneConfig)
	require.NoError(t, err)
	assert.Equal(t, util.LogLevelError, util.GLOBAL_LOG_LEVEL)
	assert.Equal(t, util.LogCollision|util.LogIO, util.GLOBAL_LOG_CATEGORIES)

	meshes := config.Meshes()
	require.Len(t, meshes, 1)
	assert.Equal(t, "ground", meshes[0].Name)
	assert.Equal(t, "ground.nbt", meshes[0].File)

	rays := config.Rays()
	require.Len(t, rays, 2)
	assert.Equal(t, "boxed", rays[0].Name)
	assert.Equal(t, util.Ray{Origin: mgl32.Vec3{0.5, 0.5, 5}, Direction: mgl32.Vec3{0, 0, -1}}, rays[0].Ray())
	lower, upper := rays[0].Bounds()
	assert.Equal(t, mgl32.Vec3{3, 3, 3}, lower)
	assert.Equal(t, mgl32.Vec3{4, 4, 4}, upper)
	lower, upper = rays[1].Bounds()
	assert.Equal(t, util.UnboundedMin, lower)
	assert.Equal(t, util.UnboundedMax, upper)
}

func TestSceneConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "no rays", text: "[mesh \"a\"]\nfile = a.glb\n"},
		{name: "no meshes", text: "[ray \"a\"]\norigin = 0 0 0\ndirection = 1 0 0\n"},
		{name: "no file", text: "[mesh \"a\"]\nname = x\n[ray \"a\"]\norigin = 0 0 0\ndirection = 1 0 0\n"},
		{name: "bad origin", text: "[mesh \"a\"]\nfile = a.glb\n[ray \"a\"]\norigin = 0 0\ndirection = 1 0 0\n"},
		{name: "zero direction", text: "[mesh \"a\"]\nfile = a.glb\n[ray \"a\"]\norigin = 0 0 0\ndirection = 0 0 0\n"},
		{name: "one bound", text: "[mesh \"a\"]\nfile = a.glb\n[ray \"a\"]\norigin = 0 0 0\ndirection = 1 0 0\nboundmin = 0 0 0\n"},
		{name: "bad level", text: "[log]\nlevel = loud\n[mesh \"a\"]\nfile = a.glb\n[ray \"a\"]\norigin = 0 0 0\ndirection = 1 0 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readConfig(t, tt.text)
			assert.Error(t, err)
		})
	}
}

func TestRunCasts(t *testing.T) {
	config, err := readConfig(t, sceneConfig)
	require.NoError(t, err)
	rays := config.Rays()

	results := RunCasts([]util.Collider{groundCollider()}, rays)
	require.Len(t, results, 2)

	boxed := results[0][0]
	require.NoError(t, boxed.Err)
	assert.Equal(t, "boxed", boxed.Ray)
	assert.False(t, boxed.Hit)
	assert.True(t, boxed.Nearest)

	down := results[1][0]
	require.NoError(t, down.Err)
	assert.True(t, down.Hit)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0}, down.Point)

	var out bytes.Buffer
	PrintResults(&out, rays, results)
	assert.Contains(t, out.String(), "boxed -> ground: miss within bounds")
	assert.Contains(t, out.String(), "down -> ground: hit")
}

func TestRunCasts_ConfigurationError(t *testing.T) {
	broken := util.NewMeshCollider("broken", glhf.AttrFormat{{Name: util.PositionAttribute, Type: glhf.Vec2}}, make([]glhf.GlFloat, 6), nil)
	config, err := readConfig(t, sceneConfig)
	require.NoError(t, err)

	results := RunCasts([]util.Collider{broken}, config.Rays())
	for _, rayResults := range results {
		assert.Error(t, rayResults[0].Err)
	}
}

func TestLoadAndDumpColliders(t *testing.T) {
	dir := t.TempDir()
	meshFile := filepath.Join(dir, "ground.nbt")
	require.NoError(t, util.SaveColliderNBT(meshFile, groundCollider()))

	colliders, err := LoadColliders([]*MeshConfig{{File: meshFile, Name: "terrain"}})
	require.NoError(t, err)
	require.Len(t, colliders, 1)
	assert.Equal(t, "terrain:ground", colliders[0].GetName())

	dumpDir := filepath.Join(dir, "dump")
	require.NoError(t, os.Mkdir(dumpDir, 0o755))
	require.NoError(t, DumpColliders(dumpDir, colliders))
	_, err = os.Stat(filepath.Join(dumpDir, "terrain_ground.nbt"))
	assert.NoError(t, err)

	_, err = LoadColliders([]*MeshConfig{{File: filepath.Join(dir, "missing.glb"), Name: "missing"}})
	assert.Error(t, err)
}
